package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/ids"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/repos"
	"github.com/panelgrid/panelgrid-backend/internal/requestdata"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// ChangeLogRecorder appends one immutable audit row per mutated entity,
// always inside the caller's transaction. It has no failure mode of its
// own beyond that shared transaction failing.
type ChangeLogRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entityType, entityID, operation string, before, after interface{}) error
}

type changeLogRecorder struct {
	log     *logger.Logger
	gen     ids.Generator
	entries repos.ChangeLogRepo
}

func NewChangeLogRecorder(log *logger.Logger, gen ids.Generator, entries repos.ChangeLogRepo) ChangeLogRecorder {
	return &changeLogRecorder{
		log:     log.With("service", "ChangeLogRecorder"),
		gen:     gen,
		entries: entries,
	}
}

func (r *changeLogRecorder) Record(ctx context.Context, tx *gorm.DB, entityType, entityID, operation string, before, after interface{}) error {
	id, err := r.gen.Next()
	if err != nil {
		return err
	}
	var beforeState datatypes.JSON
	if before != nil {
		raw, err := json.Marshal(before)
		if err != nil {
			return fmt.Errorf("marshal before state: %w", err)
		}
		beforeState = datatypes.JSON(raw)
	}
	afterState, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("marshal after state: %w", err)
	}
	entry := &types.ChangeLogEntry{
		ID:          id,
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   operation,
		BeforeState: beforeState,
		AfterState:  datatypes.JSON(afterState),
		ActorRef:    requestdata.ActorRef(ctx),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.entries.Create(ctx, tx, []*types.ChangeLogEntry{entry}); err != nil {
		return err
	}
	return nil
}
