package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

type CentreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ShoppingCentre, error)
	FindActiveByName(ctx context.Context, tx *gorm.DB, name string) (*types.ShoppingCentre, error)
	FindActiveByAddress(ctx context.Context, tx *gorm.DB, lineOne, city, state, postalCode, country string) (*types.ShoppingCentre, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.ShoppingCentre, error)
	Save(ctx context.Context, tx *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error)
}

type centreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCentreRepo(db *gorm.DB, baseLog *logger.Logger) CentreRepo {
	return &centreRepo{db: db, log: baseLog.With("repo", "CentreRepo")}
}

func (r *centreRepo) Create(ctx context.Context, tx *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(centre).Error; err != nil {
		return nil, err
	}
	return centre, nil
}

func (r *centreRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ShoppingCentre
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

func (r *centreRepo) FindActiveByName(ctx context.Context, tx *gorm.DB, name string) (*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ShoppingCentre
	if err := transaction.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND status = ?", name, types.StatusActive).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *centreRepo) FindActiveByAddress(ctx context.Context, tx *gorm.DB, lineOne, city, state, postalCode, country string) (*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ShoppingCentre
	if err := transaction.WithContext(ctx).
		Where(`LOWER(address_line_one) = LOWER(?)
			AND LOWER(city) = LOWER(?)
			AND LOWER(state) = LOWER(?)
			AND LOWER(postal_code) = LOWER(?)
			AND LOWER(country) = LOWER(?)
			AND status = ?`,
			lineOne, city, state, postalCode, country, types.StatusActive).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *centreRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ShoppingCentre
	if err := transaction.WithContext(ctx).
		Where("status = ?", types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *centreRepo) Save(ctx context.Context, tx *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(centre).Error; err != nil {
		return nil, err
	}
	return centre, nil
}
