package httpapi

// Request payloads. Validation tags mirror the business rules so that
// malformed input is rejected before it reaches a service.

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Address  string `json:"address" validate:"required,min=10"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,min=7,max=20"`
	Address *string `json:"address" validate:"omitempty,min=10"`
}

type setMembershipRequest struct {
	MembershipTier string `json:"membershipTier" validate:"required"`
}

type setStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type createServiceRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=150"`
	Description    string   `json:"description" validate:"required"`
	Price          float64  `json:"price" validate:"required,gte=0"`
	Category       string   `json:"category" validate:"required"`
	ProcessingTime string   `json:"processingTime" validate:"required"`
	IsPopular      bool     `json:"isPopular"`
	Tags           []string `json:"tags"`
	MinQuantity    int      `json:"minQuantity" validate:"gte=0"`
	MaxQuantity    int      `json:"maxQuantity" validate:"gte=0"`
}

type updateServiceRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=2,max=150"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	Category       *string  `json:"category"`
	ProcessingTime *string  `json:"processingTime"`
	IsPopular      *bool    `json:"isPopular"`
	Tags           []string `json:"tags"`
	MinQuantity    *int     `json:"minQuantity" validate:"omitempty,gte=0"`
	MaxQuantity    *int     `json:"maxQuantity" validate:"omitempty,gte=0"`
}

type addCartItemRequest struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=50"`
}

type updateCartItemRequest struct {
	// Zero and negative values remove the line, so no lower bound.
	Quantity int `json:"quantity" validate:"max=50"`
}

type checkoutItemRequest struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=50"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	PickupAddress   string                `json:"pickupAddress" validate:"required,min=10"`
	DeliveryAddress string                `json:"deliveryAddress" validate:"required,min=10"`
	PickupDate      string                `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	PickupTime      string                `json:"pickupTime" validate:"required,hhmm"`
	Notes           string                `json:"notes"`
}

type updateOrderStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	Message string  `json:"message"`
	Notes   *string `json:"notes"`
}

type reviewRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Review *string `json:"review"`
}
