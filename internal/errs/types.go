package errs

import (
	"net/http"
)

// MsgServerMisconfigured is the public message for missing store
// credentials and for any failure nobody anticipated.
const MsgServerMisconfigured = "Server misconfigured"

func newError(status int, message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional field errors, kept for logging
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	err := newError(http.StatusBadRequest, message, code)
	err.Errors = errors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	return newError(http.StatusNotFound, message, code)
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
// The caller is responsible for the Allow header.
func NewMethodNotAllowedError(message string) *HTTPError {
	return newError(http.StatusMethodNotAllowed, message, nil)
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, code *string) *HTTPError {
	return newError(http.StatusConflict, message, code)
}

// NewServerError creates a 500 with a specific public message.
func NewServerError(message string, code *string) *HTTPError {
	return newError(http.StatusInternalServerError, message, code)
}

// NewMisconfiguredError is the 500 returned when the service cannot do its
// job at all, e.g. store credentials are absent.
func NewMisconfiguredError() *HTTPError {
	code := "SERVER_MISCONFIGURED"
	return newError(http.StatusInternalServerError, MsgServerMisconfigured, &code)
}
