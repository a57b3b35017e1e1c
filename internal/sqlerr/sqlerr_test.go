package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	require.Equal(t, UniqueViolation, MapCode("23505"))
	require.Equal(t, NotNullViolation, MapCode("23502"))
	require.Equal(t, InsufficientPrivilege, MapCode("42501"))
	require.Equal(t, Other, MapCode("PGRST204"))
	require.Equal(t, Other, MapCode(""))
}

func TestMapSeverity(t *testing.T) {
	require.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	require.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestIsDuplicate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed pg error", &pgconn.PgError{Code: "23505", Message: "boom"}, true},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"typed rest error", ConvertRESTError("waitlist", "23505", "conflict", ""), true},
		{"rest message only", ConvertRESTError("waitlist", "", "duplicate key value violates unique constraint \"waitlist_email_key\"", ""), true},
		{"rest upper case", ConvertRESTError("waitlist", "", "Email ALREADY registered", ""), true},
		{"rest detail", ConvertRESTError("waitlist", "P0001", "trigger failed", "Key (email) is not UNIQUE"), true},
		{"other store error", ConvertRESTError("waitlist", "42501", "permission denied for table waitlist", ""), false},
		{"transport error", errors.New("connection already closed"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, IsDuplicate(c.err))
		})
	}
}

func TestIsStoreError(t *testing.T) {
	require.True(t, IsStoreError(ConvertRESTError("waitlist", "42501", "denied", "")))
	require.True(t, IsStoreError(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsStoreError(errors.New("dial tcp: timeout")))
}

func TestConvertRESTError_Constraint(t *testing.T) {
	err := ConvertRESTError("waitlist", "23505", `duplicate key value violates unique constraint "waitlist_email_key"`, "Key (email)=(ada@example.com) already exists.")

	require.Equal(t, "waitlist_email_key", err.ConstraintName)
	require.Equal(t, "WAITLIST_ALREADY_EXISTS", ErrorCode(err))
	require.Contains(t, err.Error(), "SQLSTATE 23505")
}

func TestErrorCode(t *testing.T) {
	require.Equal(t, "WAITLIST_ALREADY_EXISTS", ErrorCode(&pgconn.PgError{Code: "23505", TableName: "waitlist"}))
	require.Equal(t, "WAITLIST_REQUIRED", ErrorCode(&pgconn.PgError{Code: "23502", TableName: "waitlist"}))
	require.Equal(t, "WAITLIST_ERROR", ErrorCode(ConvertRESTError("waitlist", "42501", "permission denied", "")))
	require.Equal(t, "RECORD_ERROR", ErrorCode(errors.New("dial tcp: timeout")))
}

func TestConstraint(t *testing.T) {
	require.Equal(t, "waitlist_email_key", Constraint(&pgconn.PgError{Code: "23505", ConstraintName: "waitlist_email_key"}))
	require.Equal(t, "waitlist_email_key", Constraint(fmt.Errorf("insert: %w",
		ConvertRESTError("waitlist", "23505", `duplicate key value violates unique constraint "waitlist_email_key"`, ""))))
	require.Equal(t, "", Constraint(errors.New("boom")))
}
