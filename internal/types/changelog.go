package types

import (
	"time"

	"gorm.io/datatypes"
)

// Change-log operations.
const (
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpAllocate   = "allocate"
	OpDeallocate = "deallocate"
)

// Change-log entity types.
const (
	EntityCentre     = "shopping_centre"
	EntityLocation   = "location_within_centre"
	EntityAsset      = "asset"
	EntityAllocation = "asset_allocation"
)

// ChangeLogEntry is an immutable audit record, one per mutating service
// call per affected entity, written inside that call's transaction. The
// shape stays generic (entity type/operation/before/after) so the table
// can be replayed as an event source later without rearchitecting.
type ChangeLogEntry struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType  string         `gorm:"column:entity_type;not null;index:idx_change_log_entity,priority:1" json:"entity_type"`
	EntityID    string         `gorm:"type:uuid;column:entity_id;not null;index:idx_change_log_entity,priority:2" json:"entity_id"`
	Operation   string         `gorm:"column:operation;not null" json:"operation"`
	BeforeState datatypes.JSON `gorm:"column:before_state;type:jsonb" json:"before_state,omitempty"`
	AfterState  datatypes.JSON `gorm:"column:after_state;type:jsonb;not null" json:"after_state"`
	ActorRef    string         `gorm:"column:actor_ref;not null" json:"actor_ref"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (ChangeLogEntry) TableName() string { return "change_log" }
