package types

import "time"

// AssetAllocation binds one asset to one location within one centre.
// At most one status='active' row may exist per asset and per location;
// partial unique indexes in the store back both invariants under
// concurrent writers. Deallocation flips Status to removed, it never
// deletes the row.
type AssetAllocation struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID    string    `gorm:"type:uuid;column:asset_id;not null;index" json:"asset_id"`
	CentreID   string    `gorm:"type:uuid;column:centre_id;not null;index" json:"centre_id"`
	LocationID string    `gorm:"type:uuid;column:location_id;not null;index" json:"location_id"`
	Status     string    `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (AssetAllocation) TableName() string { return "asset_allocation" }
