package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/domain"
)

// Postgres error codes that signal the transaction lost a race and may
// be retried as a whole.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// mapError translates storage-level errors into domain sentinels so
// callers never depend on gorm or driver types. Unknown errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
	}
	return err
}
