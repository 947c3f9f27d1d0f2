package money

import "github.com/shopspring/decimal"

// TaxRate is the flat GST applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.18)

// LineSubtotal returns unit price multiplied by quantity, rounded to
// two decimal places.
func LineSubtotal(price float64, qty int) float64 {
	sub := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
	f, _ := sub.Round(2).Float64()
	return f
}

// Tax returns round(subtotal * 0.18) to the nearest whole currency unit.
func Tax(subtotal float64) float64 {
	t := decimal.NewFromFloat(subtotal).Mul(TaxRate)
	f, _ := t.Round(0).Float64()
	return f
}

// Round2 normalizes an amount for storage.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}
