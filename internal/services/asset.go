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

// AssetService manages display panels and their allocation to centre
// locations. An asset is either Unallocated or Allocated; allocate and
// deallocate move between the two, and patching active=false performs
// the deallocation implicitly inside the same transaction as the flag
// flip. Allocate and deallocate are deliberately two separate calls so
// an API caller can surface an intermediate confirmation to a user.
type AssetService interface {
	CreateAsset(ctx context.Context, in domain.AssetFields) (*types.Asset, error)
	GetAsset(ctx context.Context, id string) (*types.Asset, error)
	ListAssets(ctx context.Context) ([]*types.Asset, error)
	UpdateAsset(ctx context.Context, id string, patch domain.AssetPatch) (*types.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	Allocate(ctx context.Context, assetID, centreID, locationCode string) (*types.AssetAllocation, error)
	Deallocate(ctx context.Context, assetID string) error
	GetAllocation(ctx context.Context, assetID string) (*types.AssetAllocation, error)
}

type assetService struct {
	txm         repos.TxManager
	log         *logger.Logger
	factory     *domain.Factory
	assets      repos.AssetRepo
	centres     repos.CentreRepo
	locations   repos.LocationRepo
	allocations repos.AllocationRepo
	changeLog   ChangeLogRecorder
}

func NewAssetService(
	txm repos.TxManager,
	log *logger.Logger,
	factory *domain.Factory,
	assets repos.AssetRepo,
	centres repos.CentreRepo,
	locations repos.LocationRepo,
	allocations repos.AllocationRepo,
	changeLog ChangeLogRecorder,
) AssetService {
	return &assetService{
		txm:         txm,
		log:         log.With("service", "AssetService"),
		factory:     factory,
		assets:      assets,
		centres:     centres,
		locations:   locations,
		allocations: allocations,
		changeLog:   changeLog,
	}
}

func (as *assetService) CreateAsset(ctx context.Context, in domain.AssetFields) (*types.Asset, error) {
	asset, err := as.factory.NewAsset(in)
	if err != nil {
		return nil, err
	}
	if err := as.txm.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := as.assets.Create(ctx, tx, asset); err != nil {
			return err
		}
		return as.changeLog.Record(ctx, tx, types.EntityAsset, asset.ID, types.OpCreate, nil, asset)
	}); err != nil {
		return nil, translateStoreError(err)
	}
	as.log.Info("Asset created", "asset_id", asset.ID)
	return asset, nil
}

func (as *assetService) GetAsset(ctx context.Context, id string) (*types.Asset, error) {
	asset, err := as.assets.GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if asset == nil || asset.Status != types.StatusActive {
		return nil, apperrors.NotFoundf("asset %s", id)
	}
	return asset, nil
}

func (as *assetService) ListAssets(ctx context.Context) ([]*types.Asset, error) {
	assets, err := as.assets.ListActive(ctx, nil)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return assets, nil
}

// UpdateAsset applies a partial patch. A patch setting active=false on
// an asset that holds an allocation removes that allocation in the same
// transaction as the flag update; no intermediate state is observable.
func (as *assetService) UpdateAsset(ctx context.Context, id string, patch domain.AssetPatch) (*types.Asset, error) {
	var updated *types.Asset
	if err := as.txm.InTx(ctx, func(tx *gorm.DB) error {
		asset, err := as.assets.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if asset == nil || asset.Status != types.StatusActive {
			return apperrors.NotFoundf("asset %s", id)
		}
		before := *asset
		domain.ApplyAssetPatch(asset, patch)
		if err := domain.ValidateAsset(asset); err != nil {
			return err
		}
		now := time.Now().UTC()
		if patch.Deactivates() {
			allocation, err := as.allocations.FindActiveByAssetID(ctx, tx, asset.ID)
			if err != nil {
				return err
			}
			if allocation != nil {
				allocBefore := *allocation
				allocation.Status = types.StatusRemoved
				allocation.UpdatedAt = now
				if _, err := as.allocations.Save(ctx, tx, allocation); err != nil {
					return err
				}
				if err := as.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpDeallocate, &allocBefore, allocation); err != nil {
					return err
				}
			}
		}
		asset.UpdatedAt = now
		if _, err := as.assets.Save(ctx, tx, asset); err != nil {
			return err
		}
		if err := as.changeLog.Record(ctx, tx, types.EntityAsset, asset.ID, types.OpUpdate, &before, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	}); err != nil {
		return nil, translateStoreError(err)
	}
	return updated, nil
}

// DeleteAsset soft-deletes the asset and removes its allocation if one
// is active. No transition is possible from a soft-deleted asset.
func (as *assetService) DeleteAsset(ctx context.Context, id string) error {
	if err := as.txm.InTx(ctx, func(tx *gorm.DB) error {
		asset, err := as.assets.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if asset == nil || asset.Status != types.StatusActive {
			return apperrors.NotFoundf("asset %s", id)
		}
		allocation, err := as.allocations.FindActiveByAssetID(ctx, tx, asset.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		before := *asset
		asset.Status = types.StatusDeleted
		asset.Active = false
		asset.UpdatedAt = now
		if _, err := as.assets.Save(ctx, tx, asset); err != nil {
			return err
		}
		if err := as.changeLog.Record(ctx, tx, types.EntityAsset, asset.ID, types.OpDelete, &before, asset); err != nil {
			return err
		}
		if allocation != nil {
			allocBefore := *allocation
			allocation.Status = types.StatusRemoved
			allocation.UpdatedAt = now
			if _, err := as.allocations.Save(ctx, tx, allocation); err != nil {
				return err
			}
			if err := as.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpDeallocate, &allocBefore, allocation); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return translateStoreError(err)
	}
	as.log.Info("Asset deleted", "asset_id", id)
	return nil
}

// Allocate binds the asset to the location with the given code inside
// the given centre. Fails Conflict when the asset already holds an
// allocation (deallocate first); fails PreconditionFailed when the
// centre is inactive or absent, the location is absent, or the location
// is occupied by an asset that is itself active. A stale allocation held
// by an inactive occupant is removed here and allocation proceeds.
func (as *assetService) Allocate(ctx context.Context, assetID, centreID, locationCode string) (*types.AssetAllocation, error) {
	var created *types.AssetAllocation
	if err := as.txm.InTx(ctx, func(tx *gorm.DB) error {
		asset, err := as.assets.GetByID(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset == nil || asset.Status != types.StatusActive {
			return apperrors.NotFoundf("asset %s", assetID)
		}
		if !asset.Active {
			return apperrors.PreconditionFailedf("asset %s is inactive", assetID)
		}
		current, err := as.allocations.FindActiveByAssetID(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if current != nil {
			return apperrors.Conflictf("asset %s already allocated, deallocate first", assetID)
		}
		centre, err := as.centres.GetByID(ctx, tx, centreID)
		if err != nil {
			return err
		}
		if centre == nil || centre.Status != types.StatusActive || !centre.Active {
			return apperrors.PreconditionFailedf("centre %s inactive or absent", centreID)
		}
		location, err := as.locations.FindActiveByCentreAndCode(ctx, tx, centreID, locationCode)
		if err != nil {
			return err
		}
		if location == nil {
			return apperrors.PreconditionFailedf("location %q not found in centre %s", locationCode, centreID)
		}
		occupant, err := as.allocations.FindActiveByLocationID(ctx, tx, location.ID)
		if err != nil {
			return err
		}
		if occupant != nil {
			occupantAsset, err := as.assets.GetByID(ctx, tx, occupant.AssetID)
			if err != nil {
				return err
			}
			if occupantAsset != nil && occupantAsset.Active && occupantAsset.Status == types.StatusActive {
				return apperrors.PreconditionFailedf("location %q occupied by active asset %s", locationCode, occupant.AssetID)
			}
			occBefore := *occupant
			occupant.Status = types.StatusRemoved
			occupant.UpdatedAt = time.Now().UTC()
			if _, err := as.allocations.Save(ctx, tx, occupant); err != nil {
				return err
			}
			if err := as.changeLog.Record(ctx, tx, types.EntityAllocation, occupant.ID, types.OpDeallocate, &occBefore, occupant); err != nil {
				return err
			}
		}
		allocation, err := as.factory.NewAllocation(assetID, centre.ID, location.ID)
		if err != nil {
			return err
		}
		if _, err := as.allocations.Create(ctx, tx, allocation); err != nil {
			return err
		}
		if err := as.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpAllocate, nil, allocation); err != nil {
			return err
		}
		created = allocation
		return nil
	}); err != nil {
		return nil, translateStoreError(err)
	}
	as.log.Info("Asset allocated", "asset_id", assetID, "allocation_id", created.ID)
	return created, nil
}

// Deallocate removes the asset's current allocation. Succeeds as a
// no-op when the asset holds none.
func (as *assetService) Deallocate(ctx context.Context, assetID string) error {
	if err := as.txm.InTx(ctx, func(tx *gorm.DB) error {
		asset, err := as.assets.GetByID(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset == nil || asset.Status != types.StatusActive {
			return apperrors.NotFoundf("asset %s", assetID)
		}
		allocation, err := as.allocations.FindActiveByAssetID(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if allocation == nil {
			return nil
		}
		before := *allocation
		allocation.Status = types.StatusRemoved
		allocation.UpdatedAt = time.Now().UTC()
		if _, err := as.allocations.Save(ctx, tx, allocation); err != nil {
			return err
		}
		return as.changeLog.Record(ctx, tx, types.EntityAllocation, allocation.ID, types.OpDeallocate, &before, allocation)
	}); err != nil {
		return translateStoreError(err)
	}
	return nil
}

func (as *assetService) GetAllocation(ctx context.Context, assetID string) (*types.AssetAllocation, error) {
	asset, err := as.assets.GetByID(ctx, nil, assetID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if asset == nil || asset.Status != types.StatusActive {
		return nil, apperrors.NotFoundf("asset %s", assetID)
	}
	allocation, err := as.allocations.FindActiveByAssetID(ctx, nil, assetID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return allocation, nil
}
