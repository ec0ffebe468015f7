package domain

import (
	"strings"
	"time"

	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/ids"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// Factory builds fully-formed, internally-consistent entities or returns
// a *errors.Validation listing every violated rule. It performs no I/O;
// cross-row checks (uniqueness, existence) belong to the services.
type Factory struct {
	gen ids.Generator
}

func NewFactory(gen ids.Generator) *Factory {
	return &Factory{gen: gen}
}

type CentreFields struct {
	Name           string `json:"name"`
	AddressLineOne string `json:"address_line_one"`
	AddressLineTwo string `json:"address_line_two"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
}

func (f *Factory) NewCentre(in CentreFields) (*types.ShoppingCentre, error) {
	c := &types.ShoppingCentre{
		Name:           strings.TrimSpace(in.Name),
		AddressLineOne: strings.TrimSpace(in.AddressLineOne),
		AddressLineTwo: strings.TrimSpace(in.AddressLineTwo),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		PostalCode:     strings.TrimSpace(in.PostalCode),
		Country:        strings.TrimSpace(in.Country),
		Active:         true,
		Status:         types.StatusActive,
	}
	if err := ValidateCentre(c); err != nil {
		return nil, err
	}
	id, err := f.gen.Next()
	if err != nil {
		return nil, err
	}
	c.ID = id
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

type LocationFields struct {
	Code string `json:"code"`
}

func (f *Factory) NewLocation(centreID string, in LocationFields) (*types.CentreLocation, error) {
	l := &types.CentreLocation{
		CentreID: centreID,
		Code:     strings.TrimSpace(in.Code),
		Status:   types.StatusActive,
	}
	if err := ValidateLocation(l); err != nil {
		return nil, err
	}
	id, err := f.gen.Next()
	if err != nil {
		return nil, err
	}
	l.ID = id
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	return l, nil
}

type AssetFields struct {
	Name    string  `json:"name"`
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Depth   float64 `json:"depth"`
}

func (f *Factory) NewAsset(in AssetFields) (*types.Asset, error) {
	a := &types.Asset{
		Name:    strings.TrimSpace(in.Name),
		Length:  in.Length,
		Breadth: in.Breadth,
		Depth:   in.Depth,
		Active:  true,
		Status:  types.StatusActive,
	}
	if err := ValidateAsset(a); err != nil {
		return nil, err
	}
	id, err := f.gen.Next()
	if err != nil {
		return nil, err
	}
	a.ID = id
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

func (f *Factory) NewAllocation(assetID, centreID, locationID string) (*types.AssetAllocation, error) {
	var violations []string
	if assetID == "" {
		violations = append(violations, "asset id is required")
	}
	if centreID == "" {
		violations = append(violations, "centre id is required")
	}
	if locationID == "" {
		violations = append(violations, "location id is required")
	}
	if err := apperrors.NewValidation(violations); err != nil {
		return nil, err
	}
	id, err := f.gen.Next()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &types.AssetAllocation{
		ID:         id,
		AssetID:    assetID,
		CentreID:   centreID,
		LocationID: locationID,
		Status:     types.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
