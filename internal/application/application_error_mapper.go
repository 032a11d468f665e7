package application

import (
	"database/sql"
	"errors"
	"strings"

	applicationerrors "topcv/internal/application/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage errors at the boundary: the partial
// unique index on live applications surfaces as DUPLICATE_APPLICATION, never
// as a raw constraint violation.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return applicationerrors.ErrApplicationNotFound
	}
	if isUniqueViolation(err, "uq_applications_live") {
		return applicationerrors.ErrDuplicateApplication
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraint)
}
