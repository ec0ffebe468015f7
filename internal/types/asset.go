package types

import "time"

// Asset is a physical display panel. Dimensions are centimetres.
// An asset may exist allocation-free; its allocation, if any, lives in
// asset_allocation as a weak reference, never embedded here.
type Asset struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	Length    float64   `gorm:"column:length;not null" json:"length"`
	Breadth   float64   `gorm:"column:breadth;not null" json:"breadth"`
	Depth     float64   `gorm:"column:depth;not null" json:"depth"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	Status    string    `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Asset) TableName() string { return "asset" }
