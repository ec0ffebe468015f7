package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/domain"
	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/repos"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// CentreService orchestrates the shopping-centre aggregate and its
// locations. Every public operation runs as one Read Committed
// transaction: it fully applies or leaves the store untouched, and
// writes one change-log entry per affected entity inside that same
// transaction.
type CentreService interface {
	CreateCentre(ctx context.Context, in domain.CentreFields) (*types.ShoppingCentre, error)
	GetCentre(ctx context.Context, id string) (*types.ShoppingCentre, error)
	ListCentres(ctx context.Context) ([]*types.ShoppingCentre, error)
	UpdateCentre(ctx context.Context, id string, patch domain.CentrePatch) (*types.ShoppingCentre, error)
	DeleteCentre(ctx context.Context, id string) error
	AddLocation(ctx context.Context, centreID string, in domain.LocationFields) (*types.CentreLocation, error)
	ListLocations(ctx context.Context, centreID string) ([]*types.CentreLocation, error)
	UpdateLocation(ctx context.Context, centreID, locationID string, patch domain.LocationPatch) (*types.CentreLocation, error)
	RemoveLocation(ctx context.Context, centreID, locationID string) error
}

type centreService struct {
	txm         repos.TxManager
	log         *logger.Logger
	factory     *domain.Factory
	centres     repos.CentreRepo
	locations   repos.LocationRepo
	allocations repos.AllocationRepo
	changeLog   ChangeLogRecorder
}

func NewCentreService(
	txm repos.TxManager,
	log *logger.Logger,
	factory *domain.Factory,
	centres repos.CentreRepo,
	locations repos.LocationRepo,
	allocations repos.AllocationRepo,
	changeLog ChangeLogRecorder,
) CentreService {
	return &centreService{
		txm:         txm,
		log:         log.With("service", "CentreService"),
		factory:     factory,
		centres:     centres,
		locations:   locations,
		allocations: allocations,
		changeLog:   changeLog,
	}
}

func (cs *centreService) CreateCentre(ctx context.Context, in domain.CentreFields) (*types.ShoppingCentre, error) {
	centre, err := cs.factory.NewCentre(in)
	if err != nil {
		return nil, err
	}
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		byName, err := cs.centres.FindActiveByName(ctx, tx, centre.Name)
		if err != nil {
			return err
		}
		if byName != nil {
			return apperrors.Conflictf("centre name %q already in use", centre.Name)
		}
		byAddress, err := cs.centres.FindActiveByAddress(ctx, tx,
			centre.AddressLineOne, centre.City, centre.State, centre.PostalCode, centre.Country)
		if err != nil {
			return err
		}
		if byAddress != nil {
			return apperrors.Conflictf("centre address already in use")
		}
		if _, err := cs.centres.Create(ctx, tx, centre); err != nil {
			return err
		}
		return cs.changeLog.Record(ctx, tx, types.EntityCentre, centre.ID, types.OpCreate, nil, centre)
	}); err != nil {
		return nil, translateStoreError(err)
	}
	cs.log.Info("Centre created", "centre_id", centre.ID)
	return centre, nil
}

func (cs *centreService) GetCentre(ctx context.Context, id string) (*types.ShoppingCentre, error) {
	centre, err := cs.centres.GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if centre == nil || centre.Status != types.StatusActive {
		return nil, apperrors.NotFoundf("centre %s", id)
	}
	return centre, nil
}

func (cs *centreService) ListCentres(ctx context.Context) ([]*types.ShoppingCentre, error) {
	centres, err := cs.centres.ListActive(ctx, nil)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return centres, nil
}

func (cs *centreService) UpdateCentre(ctx context.Context, id string, patch domain.CentrePatch) (*types.ShoppingCentre, error) {
	var updated *types.ShoppingCentre
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		centre, err := cs.centres.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if centre == nil || centre.Status != types.StatusActive {
			return apperrors.NotFoundf("centre %s", id)
		}
		before := *centre
		domain.ApplyCentrePatch(centre, patch)
		if err := domain.ValidateCentre(centre); err != nil {
			return err
		}
		if centre.Name != before.Name {
			byName, err := cs.centres.FindActiveByName(ctx, tx, centre.Name)
			if err != nil {
				return err
			}
			if byName != nil && byName.ID != centre.ID {
				return apperrors.Conflictf("centre name %q already in use", centre.Name)
			}
		}
		byAddress, err := cs.centres.FindActiveByAddress(ctx, tx,
			centre.AddressLineOne, centre.City, centre.State, centre.PostalCode, centre.Country)
		if err != nil {
			return err
		}
		if byAddress != nil && byAddress.ID != centre.ID {
			return apperrors.Conflictf("centre address already in use")
		}
		centre.UpdatedAt = time.Now().UTC()
		if _, err := cs.centres.Save(ctx, tx, centre); err != nil {
			return err
		}
		if err := cs.changeLog.Record(ctx, tx, types.EntityCentre, centre.ID, types.OpUpdate, &before, centre); err != nil {
			return err
		}
		updated = centre
		return nil
	}); err != nil {
		return nil, translateStoreError(err)
	}
	return updated, nil
}

// DeleteCentre soft-deletes the centre, cascades the soft-delete to all
// its active locations, and removes the allocations referencing those
// locations. The affected-entity list is computed up front so each row
// gets its own change-log entry; any failure rolls back the whole
// cascade.
func (cs *centreService) DeleteCentre(ctx context.Context, id string) error {
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		centre, err := cs.centres.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if centre == nil || centre.Status != types.StatusActive {
			return apperrors.NotFoundf("centre %s", id)
		}
		locations, err := cs.locations.ListActiveByCentreID(ctx, tx, centre.ID)
		if err != nil {
			return err
		}
		locationIDs := make([]string, 0, len(locations))
		for _, l := range locations {
			locationIDs = append(locationIDs, l.ID)
		}
		allocations, err := cs.allocations.ListActiveByLocationIDs(ctx, tx, locationIDs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		before := *centre
		centre.Status = types.StatusDeleted
		centre.Active = false
		centre.UpdatedAt = now
		if _, err := cs.centres.Save(ctx, tx, centre); err != nil {
			return err
		}
		if err := cs.changeLog.Record(ctx, tx, types.EntityCentre, centre.ID, types.OpDelete, &before, centre); err != nil {
			return err
		}
		for _, location := range locations {
			locBefore := *location
			location.Status = types.StatusDeleted
			location.UpdatedAt = now
			if _, err := cs.locations.Save(ctx, tx, location); err != nil {
				return err
			}
			if err := cs.changeLog.Record(ctx, tx, types.EntityLocation, location.ID, types.OpDelete, &locBefore, location); err != nil {
				return err
			}
		}
		for _, allocation := range allocations {
			allocBefore := *allocation
			allocation.Status = types.StatusRemoved
			allocation.UpdatedAt = now
			if _, err := cs.allocations.Save(ctx, tx, allocation); err != nil {
				return err
			}
			if err := cs.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpDeallocate, &allocBefore, allocation); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return translateStoreError(err)
	}
	cs.log.Info("Centre deleted", "centre_id", id)
	return nil
}

func (cs *centreService) AddLocation(ctx context.Context, centreID string, in domain.LocationFields) (*types.CentreLocation, error) {
	location, err := cs.factory.NewLocation(centreID, in)
	if err != nil {
		return nil, err
	}
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		centre, err := cs.centres.GetByID(ctx, tx, centreID)
		if err != nil {
			return err
		}
		if centre == nil || centre.Status != types.StatusActive || !centre.Active {
			return apperrors.PreconditionFailedf("centre %s inactive or absent", centreID)
		}
		existing, err := cs.locations.FindActiveByCentreAndCode(ctx, tx, centreID, location.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.Conflictf("location code %q already in use within centre", location.Code)
		}
		if _, err := cs.locations.Create(ctx, tx, location); err != nil {
			return err
		}
		return cs.changeLog.Record(ctx, tx, types.EntityLocation, location.ID, types.OpCreate, nil, location)
	}); err != nil {
		return nil, translateStoreError(err)
	}
	return location, nil
}

func (cs *centreService) ListLocations(ctx context.Context, centreID string) ([]*types.CentreLocation, error) {
	centre, err := cs.centres.GetByID(ctx, nil, centreID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if centre == nil || centre.Status != types.StatusActive {
		return nil, apperrors.NotFoundf("centre %s", centreID)
	}
	locations, err := cs.locations.ListActiveByCentreID(ctx, nil, centreID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return locations, nil
}

func (cs *centreService) UpdateLocation(ctx context.Context, centreID, locationID string, patch domain.LocationPatch) (*types.CentreLocation, error) {
	var updated *types.CentreLocation
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		location, err := cs.locations.GetByID(ctx, tx, locationID)
		if err != nil {
			return err
		}
		if location == nil || location.CentreID != centreID || location.Status != types.StatusActive {
			return apperrors.NotFoundf("location %s in centre %s", locationID, centreID)
		}
		before := *location
		domain.ApplyLocationPatch(location, patch)
		if err := domain.ValidateLocation(location); err != nil {
			return err
		}
		if location.Code != before.Code {
			existing, err := cs.locations.FindActiveByCentreAndCode(ctx, tx, centreID, location.Code)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != location.ID {
				return apperrors.Conflictf("location code %q already in use within centre", location.Code)
			}
		}
		location.UpdatedAt = time.Now().UTC()
		if _, err := cs.locations.Save(ctx, tx, location); err != nil {
			return err
		}
		if err := cs.changeLog.Record(ctx, tx, types.EntityLocation, location.ID, types.OpUpdate, &before, location); err != nil {
			return err
		}
		updated = location
		return nil
	}); err != nil {
		return nil, translateStoreError(err)
	}
	return updated, nil
}

// RemoveLocation soft-deletes one location and removes its allocation if
// one is active: the centre-deletion cascade scaled down to a single row.
func (cs *centreService) RemoveLocation(ctx context.Context, centreID, locationID string) error {
	if err := cs.txm.InTx(ctx, func(tx *gorm.DB) error {
		location, err := cs.locations.GetByID(ctx, tx, locationID)
		if err != nil {
			return err
		}
		if location == nil || location.CentreID != centreID || location.Status != types.StatusActive {
			return apperrors.NotFoundf("location %s in centre %s", locationID, centreID)
		}
		allocation, err := cs.allocations.FindActiveByLocationID(ctx, tx, location.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		before := *location
		location.Status = types.StatusDeleted
		location.UpdatedAt = now
		if _, err := cs.locations.Save(ctx, tx, location); err != nil {
			return err
		}
		if err := cs.changeLog.Record(ctx, tx, types.EntityLocation, location.ID, types.OpDelete, &before, location); err != nil {
			return err
		}
		if allocation != nil {
			allocBefore := *allocation
			allocation.Status = types.StatusRemoved
			allocation.UpdatedAt = now
			if _, err := cs.allocations.Save(ctx, tx, allocation); err != nil {
				return err
			}
			if err := cs.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpDeallocate, &allocBefore, allocation); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return translateStoreError(err)
	}
	return nil
}
