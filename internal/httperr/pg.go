package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs que nos interesan: la constraint EXCLUDE de citas y el
// CHECK de stock son la última línea de defensa cuando dos
// transacciones pasan la validación en paralelo.
const (
	pgExclusionViolation = "23P01"
	pgCheckViolation     = "23514"
)

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	return false
}
