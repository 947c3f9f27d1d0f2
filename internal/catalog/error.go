package catalog

import "errors"

var (
	ErrServiceNotFound       = errors.New("service not found")
	ErrServiceInactive       = errors.New("service is not available")
	ErrInvalidCategory       = errors.New("invalid service category")
	ErrInvalidProcessingTime = errors.New("invalid processing time")
	ErrInvalidPrice          = errors.New("price must not be negative")
	ErrInvalidQuantityBounds = errors.New("invalid quantity bounds")
)
