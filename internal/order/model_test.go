package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	valid := []string{
		"pending", "confirmed", "picked-up", "in-progress",
		"ready", "out-for-delivery", "delivered", "cancelled",
	}
	for _, s := range valid {
		assert.True(t, ValidStatus(s), s)
	}
	for _, s := range []string{"", "PENDING", "shipped", "done"} {
		assert.False(t, ValidStatus(s), s)
	}
}

func TestCustomerCancellable(t *testing.T) {
	assert.True(t, CustomerCancellable(StatusPending))
	assert.True(t, CustomerCancellable(StatusConfirmed))

	for _, s := range []Status{
		StatusPickedUp, StatusInProgress, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.False(t, CustomerCancellable(s), string(s))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusOutForDelivery))
}

func TestDefaultMessage(t *testing.T) {
	// every enumerated status has a concrete default
	for _, s := range []Status{
		StatusPending, StatusConfirmed, StatusPickedUp, StatusInProgress,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.NotEmpty(t, DefaultMessage(s), string(s))
	}
	assert.Contains(t, DefaultMessage(StatusPending), "placed successfully")
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	n := NewOrderNumber(now)

	assert.True(t, strings.HasPrefix(n, "LND-20260828-"), n)

	// unique across calls
	assert.NotEqual(t, n, NewOrderNumber(now))
}
