package sqlerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// duplicateMarkers are the fragments hosted stores put in uniqueness
// violation messages when no SQLSTATE is available.
var duplicateMarkers = []string{"duplicate", "unique", "already"}

// IsDuplicate reports whether err is a uniqueness violation reported by the store.
//
// The typed SQLSTATE is authoritative. The substring scan is a compatibility
// shim for backends that only return a message, and it only looks at
// store-reported messages (*Error, *pgconn.PgError). Transport errors like
// "connection already closed" are never classified as duplicates.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if ErrCode(err) == UniqueViolation {
		return true
	}

	var message string
	var sqlErr *Error
	var pgerr *pgconn.PgError
	switch {
	case errors.As(err, &sqlErr):
		message = sqlErr.Message + " " + sqlErr.Detail
	case errors.As(err, &pgerr):
		message = pgerr.Message + " " + pgerr.Detail
	default:
		return false
	}

	message = strings.ToLower(message)
	for _, marker := range duplicateMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}

	return false
}

// IsStoreError reports whether err was reported by the store itself
// rather than by the transport or our own code.
func IsStoreError(err error) bool {
	var sqlErr *Error
	var pgerr *pgconn.PgError
	return errors.As(err, &sqlErr) || errors.As(err, &pgerr)
}

// Constraint returns the violated constraint name, or "" when the store did
// not report one.
func Constraint(err error) string {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.ConstraintName
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return pgerr.ConstraintName
	}

	return ""
}
