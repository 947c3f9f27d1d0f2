package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPickedUp       Status = "picked-up"
	StatusInProgress     Status = "in-progress"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPickedUp, StatusInProgress,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CustomerCancellable reports whether the owning customer may still
// cancel from the given status. Admins are not bound by this: the
// admin status update accepts any enumerated status from any state.
func CustomerCancellable(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// DefaultMessage is the tracking message used when the caller supplies
// none for a transition.
func DefaultMessage(s Status) string {
	switch s {
	case StatusPending:
		return "Order placed successfully. We will confirm your pickup shortly."
	case StatusConfirmed:
		return "Order confirmed. A pickup agent has been assigned."
	case StatusPickedUp:
		return "Your garments have been picked up."
	case StatusInProgress:
		return "Your garments are being processed."
	case StatusReady:
		return "Your order is ready for delivery."
	case StatusOutForDelivery:
		return "Your order is out for delivery."
	case StatusDelivered:
		return "Order delivered. Thank you for choosing us!"
	case StatusCancelled:
		return "Order has been cancelled."
	default:
		return "Order status updated."
	}
}

// NewOrderNumber returns a human-readable unique order number, e.g.
// "LND-20260828-1a2b3c4d".
func NewOrderNumber(now time.Time) string {
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("LND-%s-%s", now.Format("20060102"), short)
}

// OrderItem is a snapshot taken at checkout so later catalog edits do
// not retroactively alter historical orders.
type OrderItem struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// TrackingUpdate is one immutable, timestamped entry in the order's
// status history.
type TrackingUpdate struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomerInfo is the owning account summary embedded in responses.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID                string           `json:"id"`
	OrderNumber       string           `json:"orderNumber"`
	UserID            int              `json:"userId"`
	Customer          *CustomerInfo    `json:"customer,omitempty"`
	Items             []OrderItem      `json:"items"`
	Subtotal          float64          `json:"subtotal"`
	Tax               float64          `json:"tax"`
	Total             float64          `json:"total"`
	PickupAddress     string           `json:"pickupAddress"`
	DeliveryAddress   string           `json:"deliveryAddress"`
	PickupDate        string           `json:"pickupDate"`
	PickupTime        string           `json:"pickupTime"`
	Status            Status           `json:"status"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time       `json:"actualDelivery,omitempty"`
	TrackingUpdates   []TrackingUpdate `json:"trackingUpdates"`
	Rating            *int             `json:"rating,omitempty"`
	Review            *string          `json:"review,omitempty"`
	Notes             string           `json:"notes"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

type CheckoutItem struct {
	ServiceID string
	Quantity  int
}

type CheckoutParams struct {
	UserID          int
	Items           []CheckoutItem
	PickupAddress   string
	DeliveryAddress string
	PickupDate      string // "2006-01-02"
	PickupTime      string // 24h "HH:MM"
	Notes           string
}

// ListFilter narrows order listings. UserID is nil for admins, who see
// every account's orders.
type ListFilter struct {
	UserID *int
	Status *string
}
