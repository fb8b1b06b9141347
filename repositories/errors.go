package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/navikt/isdialogmote-sub002/models"
)

func IsUniqueViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.UniqueViolation
}

func IsForeignKeyViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.ForeignKeyViolation
}

func IsNotNullViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.NotNullViolation
}

// classifyWriteError maps the integrity errors of postgres to the domain errors.
func classifyWriteError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolationError(err):
		return errors.Wrap(models.ConflictError, msg)
	case IsForeignKeyViolationError(err):
		return errors.Wrap(models.NotFoundError, msg)
	case IsNotNullViolationError(err):
		return errors.Wrap(models.ConstraintViolationError, msg)
	}
	return errors.Wrap(err, msg)
}
