package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/lingua/internal/storage"
)

// SQLSTATE codes of integrity constraint violations.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// constraintError tags foreign key and unique violations with the matching
// storage sentinel. Other errors are returned unchanged.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case foreignKeyViolation:
		return fmt.Errorf("%w: %w", storage.ErrMissingReference, err)
	case uniqueViolation:
		return fmt.Errorf("%w: %w", storage.ErrDuplicate, err)
	default:
		return err
	}
}
