// Package pgerr classifies PostgreSQL driver errors.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE raised when a unique constraint rejects a row.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err, or anything it wraps, is a pgx error
// carrying UniqueViolation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == UniqueViolation
	}
	return false
}
