package cart

import (
	"time"

	"laundrilo-be/internal/money"
)

// Quantity bounds for one cart line.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 50
)

// CartItem is one staged line: the price is snapshotted at add time.
type CartItem struct {
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Cart is the single mutable staging area per account. TotalItems and
// TotalPrice are derived from Items and recomputed before every write;
// they are never accepted from the outside.
type Cart struct {
	ID         int        `json:"id"`
	UserID     int        `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// RecomputeTotals rebuilds the derived fields from the current items.
func (c *Cart) RecomputeTotals() {
	totalItems := 0
	totalPrice := 0.0
	for _, it := range c.Items {
		totalItems += it.Quantity
		totalPrice += money.LineSubtotal(it.Price, it.Quantity)
	}
	c.TotalItems = totalItems
	c.TotalPrice = money.Round2(totalPrice)
}
