package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
)

const pgUniqueViolation = "23505"

// translateStoreError maps storage failures onto the domain taxonomy.
// A unique-index violation raised by a concurrent writer must come back
// as the same Conflict/PreconditionFailed the service would have
// returned had it read the bad state directly; everything else the
// store throws becomes a retryable ErrTransactionFailure.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrPreconditionFailed) ||
		errors.Is(err, apperrors.ErrIdentifierCollision) {
		return err
	}
	if v := apperrors.AsValidation(err); v != nil {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		// Occupancy races surface through the per-location allocation
		// index and map to the same error a direct read would produce.
		if strings.Contains(pgErr.ConstraintName, "uq_allocation_location_active") {
			return apperrors.PreconditionFailedf("location already occupied")
		}
		return apperrors.Conflictf("unique constraint %s violated", pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflictf("duplicate key")
	}
	return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailure, err)
}
