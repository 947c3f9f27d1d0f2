package order

import "errors"

var (
	// -- Lookup / ownership --
	ErrOrderNotFound = errors.New("order not found")
	ErrUnauthorized  = errors.New("unauthorized")

	// -- Checkout validation --
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 50")
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service is not available")
	ErrInvalidPickup    = errors.New("invalid pickup date or time")
	ErrPickupNotFuture  = errors.New("pickup must be scheduled in the future")

	// -- Lifecycle --
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNotCancellable  = errors.New("order can no longer be cancelled")
	ErrNotDelivered    = errors.New("order has not been delivered yet")
	ErrAlreadyReviewed = errors.New("order has already been reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)
