package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier maps pgconn errors onto driver independent
// categories so repositories never match on raw SQLSTATE codes.
type PostgresErrorClassifier struct{}

// IsUniqueViolation reports whether err is a unique constraint violation.
func (PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func (PostgresErrorClassifier) IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.ForeignKeyViolation
}

// IsRetriable reports whether err is a transient connection failure worth
// retrying on a fresh connection.
func (PostgresErrorClassifier) IsRetriable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgerrcode.IsConnectionException(pgErr.Code)
}

// ConstraintName returns the violated constraint name, or an empty string
// when err carries no constraint information.
func (PostgresErrorClassifier) ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}

	return pgErr.ConstraintName
}
