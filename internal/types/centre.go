package types

import "time"

// Entity lifecycle status. Rows are never physically removed from the
// first four tables; "deleting" flips Status and keeps the row.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
	// StatusRemoved marks a deallocated asset_allocation row.
	StatusRemoved = "removed"
)

type ShoppingCentre struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null;index" json:"name"`
	AddressLineOne string    `gorm:"column:address_line_one;not null" json:"address_line_one"`
	AddressLineTwo string    `gorm:"column:address_line_two" json:"address_line_two,omitempty"`
	City           string    `gorm:"column:city;not null" json:"city"`
	State          string    `gorm:"column:state;not null" json:"state"`
	PostalCode     string    `gorm:"column:postal_code;not null" json:"postal_code"`
	Country        string    `gorm:"column:country;not null" json:"country"`
	Active         bool      `gorm:"column:active;not null;default:true" json:"active"`
	Status         string    `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (ShoppingCentre) TableName() string { return "shopping_centre" }
