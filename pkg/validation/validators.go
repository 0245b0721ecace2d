package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Brazilian numbers as typed in forms: "+55 (11) 98888-7777", "11988887777"
	phoneCharsRegex = regexp.MustCompile(`^[0-9+()\s.-]+$`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ValidPhone accepts formatted phone numbers with 10 to 13 digits
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if !phoneCharsRegex.MatchString(val) {
		return false
	}
	digits := len(nonDigitRegex.ReplaceAllString(val, ""))
	return digits >= 10 && digits <= 13
}
