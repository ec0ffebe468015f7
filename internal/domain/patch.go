package domain

import (
	"strings"

	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// Patch types carry partial-field updates. Nil pointer means "leave the
// field alone". Merged entities are re-validated before persisting.

type CentrePatch struct {
	Name           *string `json:"name"`
	AddressLineOne *string `json:"address_line_one"`
	AddressLineTwo *string `json:"address_line_two"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	PostalCode     *string `json:"postal_code"`
	Country        *string `json:"country"`
	Active         *bool   `json:"active"`
}

func ApplyCentrePatch(c *types.ShoppingCentre, p CentrePatch) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.AddressLineOne != nil {
		c.AddressLineOne = strings.TrimSpace(*p.AddressLineOne)
	}
	if p.AddressLineTwo != nil {
		c.AddressLineTwo = strings.TrimSpace(*p.AddressLineTwo)
	}
	if p.City != nil {
		c.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		c.State = strings.TrimSpace(*p.State)
	}
	if p.PostalCode != nil {
		c.PostalCode = strings.TrimSpace(*p.PostalCode)
	}
	if p.Country != nil {
		c.Country = strings.TrimSpace(*p.Country)
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
}

type LocationPatch struct {
	Code *string `json:"code"`
}

func ApplyLocationPatch(l *types.CentreLocation, p LocationPatch) {
	if p.Code != nil {
		l.Code = strings.TrimSpace(*p.Code)
	}
}

type AssetPatch struct {
	Name    *string  `json:"name"`
	Length  *float64 `json:"length"`
	Breadth *float64 `json:"breadth"`
	Depth   *float64 `json:"depth"`
	Active  *bool    `json:"active"`
}

func ApplyAssetPatch(a *types.Asset, p AssetPatch) {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Length != nil {
		a.Length = *p.Length
	}
	if p.Breadth != nil {
		a.Breadth = *p.Breadth
	}
	if p.Depth != nil {
		a.Depth = *p.Depth
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
}

// Deactivates reports whether the patch flips an asset to inactive,
// which must atomically remove a held allocation.
func (p AssetPatch) Deactivates() bool {
	return p.Active != nil && !*p.Active
}
