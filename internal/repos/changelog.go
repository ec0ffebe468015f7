package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// ChangeLogRepo is insert-only. There are deliberately no update or
// delete methods; the store additionally suppresses UPDATE/DELETE on the
// change_log table.
type ChangeLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ChangeLogEntry) ([]*types.ChangeLogEntry, error)
	ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]*types.ChangeLogEntry, error)
}

type changeLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChangeLogRepo(db *gorm.DB, baseLog *logger.Logger) ChangeLogRepo {
	return &changeLogRepo{db: db, log: baseLog.With("repo", "ChangeLogRepo")}
}

func (r *changeLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ChangeLogEntry) ([]*types.ChangeLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return []*types.ChangeLogEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *changeLogRepo) ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]*types.ChangeLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChangeLogEntry
	if err := transaction.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
