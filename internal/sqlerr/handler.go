package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// If err unwraps into *sqlerr.Error its Code is returned, a raw
// *pgconn.PgError is mapped on the fly, and anything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertRESTError builds a sqlerr.Error from the fields a PostgREST error
// body carries: {"code", "message", "details", "hint"}.
//
// PostgREST passes SQLSTATE through in "code", so typed classification
// works the same as for pgx. Its own errors use PGRST-prefixed codes and
// classify as Other.
func ConvertRESTError(table, code, message, details string) *Error {
	return &Error{
		Code:           MapCode(code),
		Severity:       SeverityError,
		DatabaseCode:   code,
		Message:        message,
		Detail:         details,
		TableName:      table,
		ConstraintName: constraintFromMessage(message),
	}
}

// constraintFromMessage pulls the quoted constraint name out of messages like
// `duplicate key value violates unique constraint "waitlist_email_key"`.
func constraintFromMessage(message string) string {
	const marker = `constraint "`
	i := strings.Index(message, marker)
	if i < 0 {
		return ""
	}
	rest := message[i+len(marker):]
	if j := strings.Index(rest, `"`); j >= 0 {
		return rest[:j]
	}
	return ""
}

// generateErrorCode creates consistent application error codes from DB errors.
//
//	<DOMAIN>_<ACTION>, e.g. waitlist + UniqueViolation => WAITLIST_ALREADY_EXISTS
//
// DOMAIN is the table name, uppercased and crudely singularized.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// ErrorCode exposes generateErrorCode for callers that map errors themselves.
func ErrorCode(err error) string {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return generateErrorCode(sqlErr.TableName, sqlErr.Code)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return generateErrorCode(pgerr.TableName, MapCode(pgerr.Code))
	}

	return generateErrorCode("", ErrCode(err))
}
