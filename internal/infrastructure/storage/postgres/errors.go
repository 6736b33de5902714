package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fakturator/internal/core/apperror"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// TranslateError maps a pgx error to the application error taxonomy.
//
// Missing rows become NotFound for the named entity; everything else is a
// StorageUnavailable so callers can distinguish "does not exist" from
// "storage is down" and retry only the latter.
func TranslateError(err error, entityName string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entityName, key)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.NewConflict("record already exists").
			WithDetail("entity", entityName).
			WithCause(err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return apperror.NewStorageUnavailable(err)
}
