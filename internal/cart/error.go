package cart

import "errors"

var (
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 50")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service is not available")
)
