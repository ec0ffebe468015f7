package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

type LocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CentreLocation, error)
	FindActiveByCentreAndCode(ctx context.Context, tx *gorm.DB, centreID, code string) (*types.CentreLocation, error)
	ListActiveByCentreID(ctx context.Context, tx *gorm.DB, centreID string) ([]*types.CentreLocation, error)
	Save(ctx context.Context, tx *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error)
}

type locationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
	return &locationRepo{db: db, log: baseLog.With("repo", "LocationRepo")}
}

func (r *locationRepo) Create(ctx context.Context, tx *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CentreLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CentreLocation
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

func (r *locationRepo) FindActiveByCentreAndCode(ctx context.Context, tx *gorm.DB, centreID, code string) (*types.CentreLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CentreLocation
	if err := transaction.WithContext(ctx).
		Where("centre_id = ? AND LOWER(code) = LOWER(?) AND status = ?", centreID, code, types.StatusActive).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *locationRepo) ListActiveByCentreID(ctx context.Context, tx *gorm.DB, centreID string) ([]*types.CentreLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CentreLocation
	if err := transaction.WithContext(ctx).
		Where("centre_id = ? AND status = ?", centreID, types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *locationRepo) Save(ctx context.Context, tx *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}
