package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewBadRequestError("Invalid JSON", nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("Route not found", nil), http.StatusNotFound, "NOT_FOUND"},
		{NewMethodNotAllowedError("Method not allowed"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{NewConflictError("taken", nil), http.StatusConflict, "CONFLICT"},
		{NewServerError("Failed to save signup", nil), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{NewMisconfiguredError(), http.StatusInternalServerError, "SERVER_MISCONFIGURED"},
	}

	for _, c := range cases {
		require.Equal(t, c.status, c.err.Status)
		require.Equal(t, c.code, c.err.Code)
		require.Equal(t, c.err.Message, c.err.Response().Error)
	}
}

func TestCustomCode(t *testing.T) {
	code := "WAITLIST_ALREADY_EXISTS"
	err := NewConflictError("This email is already on the waitlist.", &code)
	require.Equal(t, code, err.Code)
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("joining waitlist: %w", NewMisconfiguredError())

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	require.Equal(t, MsgServerMisconfigured, httpErr.Message)
	require.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestWithMessage(t *testing.T) {
	base := NewBadRequestError("Validation failed", nil, []FieldError{{Field: "email", Error: "is required"}})
	copied := base.WithMessage("Missing required fields")

	require.Equal(t, "Validation failed", base.Message)
	require.Equal(t, "Missing required fields", copied.Message)
	require.Equal(t, base.Errors, copied.Errors)
}
