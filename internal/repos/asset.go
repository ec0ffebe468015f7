package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Asset, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error)
	Save(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Asset
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

func (r *assetRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Asset
	if err := transaction.WithContext(ctx).
		Where("status = ?", types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) Save(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}
