package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Abhinav-2002/Salaried/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email_shape"`)
//   - Implement Validate() error that runs validation.Struct(req)
type Validatable interface {
	Validate() error
}

// BindAndValidate decodes the JSON body into payload and validates it.
//
// Flow:
//  1. DecodeJSON fills payload. Any syntax or type error is 400 "Invalid JSON".
//  2. payload.Validate() applies the struct tags.
//  3. Failures become a 400 whose message is picked by tag priority
//     (required beats email shape); field errors ride along for logging.
func BindAndValidate(c echo.Context, payload Validatable) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		// The body limit middleware reports an oversized body through the reader.
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			return echoErr
		}
		return errs.NewBadRequestError(MsgInvalidJSON, nil, nil)
	}

	if err := DecodeJSON(body, payload); err != nil {
		return errs.NewBadRequestError(MsgInvalidJSON, nil, []errs.FieldError{
			{Field: "body", Error: err.Error()},
		})
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(MsgValidationFailed, nil, fieldErrors).WithMessage(msg)
	}

	return nil
}

// DecodeJSON decodes body into payload.
//
// Clients sometimes send the JSON document as a JSON string, so a top-level
// string is decoded a second time. A top-level value that is not an object
// (null, a number, an array) leaves payload untouched, which the caller then
// sees as missing fields.
func DecodeJSON(body []byte, payload any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return errors.New("empty body")
	}

	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return errors.Wrap(err, "decode string body")
		}
		body = bytes.TrimSpace([]byte(inner))
		if len(body) == 0 {
			return errors.New("empty body")
		}
	}

	if !json.Valid(body) {
		return errors.New("malformed JSON")
	}

	if body[0] != '{' {
		return nil
	}

	if err := json.Unmarshal(body, payload); err != nil {
		return errors.Wrap(err, "decode object body")
	}

	return nil
}

// extractValidationError converts validator errors into field errors and
// the one summary message the client gets.
func extractValidationError(err error) (string, []errs.FieldError) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return MsgValidationFailed, []errs.FieldError{{Field: "payload", Error: err.Error()}}
	}

	var fieldErrors []errs.FieldError
	missing, badEmail := false, false

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			missing = true
			msg = "is required"

		case "email_shape":
			badEmail = true
			msg = "must be a valid email address"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	switch {
	case missing:
		return MsgMissingFields, fieldErrors
	case badEmail:
		return MsgInvalidEmail, fieldErrors
	default:
		return MsgValidationFailed, fieldErrors
	}
}

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// Note: This validates format only. It does not validate UUID version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
