package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

type AllocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.AssetAllocation, error)
	FindActiveByAssetID(ctx context.Context, tx *gorm.DB, assetID string) (*types.AssetAllocation, error)
	FindActiveByLocationID(ctx context.Context, tx *gorm.DB, locationID string) (*types.AssetAllocation, error)
	ListActiveByLocationIDs(ctx context.Context, tx *gorm.DB, locationIDs []string) ([]*types.AssetAllocation, error)
	Save(ctx context.Context, tx *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error)
}

type allocationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAllocationRepo(db *gorm.DB, baseLog *logger.Logger) AllocationRepo {
	return &allocationRepo{db: db, log: baseLog.With("repo", "AllocationRepo")}
}

func (r *allocationRepo) Create(ctx context.Context, tx *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(allocation).Error; err != nil {
		return nil, err
	}
	return allocation, nil
}

func (r *allocationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.AssetAllocation
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *allocationRepo) FindActiveByAssetID(ctx context.Context, tx *gorm.DB, assetID string) (*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.AssetAllocation
	if err := transaction.WithContext(ctx).
		Where("asset_id = ? AND status = ?", assetID, types.StatusActive).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *allocationRepo) FindActiveByLocationID(ctx context.Context, tx *gorm.DB, locationID string) (*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.AssetAllocation
	if err := transaction.WithContext(ctx).
		Where("location_id = ? AND status = ?", locationID, types.StatusActive).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *allocationRepo) ListActiveByLocationIDs(ctx context.Context, tx *gorm.DB, locationIDs []string) ([]*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssetAllocation
	if len(locationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("location_id IN ? AND status = ?", locationIDs, types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *allocationRepo) Save(ctx context.Context, tx *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(allocation).Error; err != nil {
		return nil, err
	}
	return allocation, nil
}
