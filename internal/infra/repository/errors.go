package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// PostgreSQL SQLSTATE codes the stores react to.
const (
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err comes from the booking overlap
// constraint.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgErrCodeExclusionViolation
}

// wrap leaves not-found and domain signals untouched and marks everything
// else as a persistence failure.
func wrap(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, domain.ErrOverlapViolation):
		return err
	case IsExclusionConflict(err):
		return domain.ErrOverlapViolation
	case pgCode(err) == pgErrCodeForeignKeyViolation:
		return gorm.ErrRecordNotFound
	}
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}
	return httperr.Persistence(err, msg)
}
