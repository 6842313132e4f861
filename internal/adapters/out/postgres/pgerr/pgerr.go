// Package pgerr translates PostgreSQL failures into the errs vocabulary.
package pgerr

import (
	"errors"

	"salesorder/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	checkViolation       = "23514"
)

// Translate maps concurrency failures to VersionIsInvalidError and constraint
// violations to ValueIsInvalidError. Other errors, and nil, pass through.
func Translate(err error, param string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case serializationFailure, deadlockDetected, lockNotAvailable:
		return errs.NewVersionIsInvalidErrorWithCause(param, err)
	case uniqueViolation, foreignKeyViolation, checkViolation:
		return errs.NewValueIsInvalidErrorWithCause(param, errors.New(pgErr.Message))
	default:
		return err
	}
}
