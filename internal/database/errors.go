package database

import (
	"errors"
	"fmt"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapStoreError translates driver faults into the store-level error
// categories. Uniqueness violations become ErrConstraint so a lost create
// race surfaces as a recognizable outcome; every other driver fault is a
// plain store access failure. pgx.ErrNoRows is not handled here, absence is
// not a fault and repositories report it as a nil result.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: %s", models.ErrConstraint, pgErr.ConstraintName)
		}
		return fmt.Errorf("%w: %s", models.ErrStoreAccess, pgErr.Code)
	}

	return fmt.Errorf("%w: %v", models.ErrStoreAccess, err)
}
