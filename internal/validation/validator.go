package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

var pickupTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// New returns a configured validator with the custom rules the API uses.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// 24-hour HH:MM, e.g. "09:30" or "18:00".
	_ = v.RegisterValidation("hhmm", func(fl validatorv10.FieldLevel) bool {
		return pickupTimeRegex.MatchString(fl.Field().String())
	})

	return v
}
