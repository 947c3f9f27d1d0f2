package user

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type MembershipTier string

const (
	TierBronze   MembershipTier = "bronze"
	TierSilver   MembershipTier = "silver"
	TierGold     MembershipTier = "gold"
	TierPlatinum MembershipTier = "platinum"
)

// Tier spend thresholds, in whole currency units of lifetime spend.
const (
	silverThreshold   = 10000
	goldThreshold     = 25000
	platinumThreshold = 50000
)

// TierFor derives the membership tier from lifetime spend. It is the
// single source of truth; the stored column is recomputed from it on
// every spend change.
func TierFor(totalSpent float64) MembershipTier {
	switch {
	case totalSpent < silverThreshold:
		return TierBronze
	case totalSpent < goldThreshold:
		return TierSilver
	case totalSpent < platinumThreshold:
		return TierGold
	default:
		return TierPlatinum
	}
}

// ValidTier reports whether s names a known membership tier.
func ValidTier(s string) bool {
	switch MembershipTier(s) {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

type Account struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Password       string         `json:"-"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Role           Role           `json:"role"`
	MembershipTier MembershipTier `json:"membershipTier"`
	TotalOrders    int            `json:"totalOrders"`
	TotalSpent     float64        `json:"totalSpent"`
	IsActive       bool           `json:"isActive"`
	LastLogin      *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type CreateAccountParams struct {
	Name     string
	Email    string
	Password string // already hashed
	Phone    string
	Address  string
	Role     Role
}

type UpdateProfileParams struct {
	UserID  int
	Name    *string
	Phone   *string
	Address *string
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Role     *string
	IsActive *bool
	Search   *string
}
