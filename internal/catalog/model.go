package catalog

import "time"

type Category string

const (
	CategoryWashFold    Category = "wash-fold"
	CategoryDryCleaning Category = "dry-cleaning"
	CategoryIroning     Category = "ironing"
	CategoryShoeCare    Category = "shoe-care"
	CategoryPremium     Category = "premium"
	CategoryHousehold   Category = "household"
)

type ProcessingTime string

const (
	ProcessingSameDay ProcessingTime = "same-day"
	Processing24h     ProcessingTime = "24-hours"
	Processing48h     ProcessingTime = "48-hours"
	Processing72h     ProcessingTime = "72-hours"
)

func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryWashFold, CategoryDryCleaning, CategoryIroning,
		CategoryShoeCare, CategoryPremium, CategoryHousehold:
		return true
	}
	return false
}

func ValidProcessingTime(s string) bool {
	switch ProcessingTime(s) {
	case ProcessingSameDay, Processing24h, Processing48h, Processing72h:
		return true
	}
	return false
}

// ProcessingDuration maps a processing-time bucket to wall-clock time,
// used when estimating delivery at checkout.
func ProcessingDuration(p ProcessingTime) time.Duration {
	switch p {
	case ProcessingSameDay:
		return 8 * time.Hour
	case Processing24h:
		return 24 * time.Hour
	case Processing48h:
		return 48 * time.Hour
	case Processing72h:
		return 72 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Service is one purchasable catalog entry, e.g. "Premium Shirt Laundry".
type Service struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Category       Category       `json:"category"`
	ProcessingTime ProcessingTime `json:"processingTime"`
	IsActive       bool           `json:"isActive"`
	IsPopular      bool           `json:"isPopular"`
	Tags           []string       `json:"tags"`
	MinQuantity    int            `json:"minQuantity"`
	MaxQuantity    int            `json:"maxQuantity"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// QueryFilter narrows the public listing; all fields combine with AND.
type QueryFilter struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Popular  *bool
	Search   *string
}

type UpdateServiceParams struct {
	ID             string
	Name           *string
	Description    *string
	Price          *float64
	Category       *string
	ProcessingTime *string
	IsPopular      *bool
	Tags           []string
	MinQuantity    *int
	MaxQuantity    *int
}
