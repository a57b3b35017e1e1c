// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and turns validation errors into the single summary message
// the client sees, keeping per-field detail for the logs.
package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/Abhinav-2002/Salaried/internal/lib/utils"
	"github.com/go-playground/validator/v10"
)

// Public messages for rejected payloads.
const (
	MsgInvalidJSON      = "Invalid JSON"
	MsgMissingFields    = "Missing required fields"
	MsgInvalidEmail     = "Invalid email address"
	MsgValidationFailed = "Validation failed"
)

// emailShapeRegex is deliberately loose: something@something.tld with a
// single "@". Whitespace is rejected separately by IsEmailShape, since RE2's
// \s only covers ASCII.
var emailShapeRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the project's custom tags registered.
//
//	email_shape: matches local@domain.tld
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
			return IsEmailShape(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

// IsEmailShape reports whether email looks like local@domain.tld and holds
// no whitespace at all, including Unicode spaces and U+FEFF.
func IsEmailShape(email string) bool {
	if strings.IndexFunc(email, utils.IsSpace) >= 0 {
		return false
	}
	return emailShapeRegex.MatchString(email)
}
