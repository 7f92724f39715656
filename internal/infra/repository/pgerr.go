package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// isExclusionConflict reports the bookings_no_overlap constraint firing.
func isExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}
