package repos

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// TxManager owns transaction boundaries. The outermost service operation
// opens exactly one transaction through InTx and hands the tx handle down
// to every repo call; repos never open transactions themselves.
type TxManager interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}
