package types

import "time"

// CentreLocation is a centre-scoped slot where an asset may be installed.
// Code is unique among the owning centre's active locations only.
type CentreLocation struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CentreID  string    `gorm:"type:uuid;column:centre_id;not null;index" json:"centre_id"`
	Code      string    `gorm:"column:code;not null" json:"code"`
	Status    string    `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CentreLocation) TableName() string { return "location_within_centre" }
