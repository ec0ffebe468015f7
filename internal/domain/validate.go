package domain

import (
	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// ValidateCentre checks the field-level rules. Name and every address
// field except line two are mandatory. Ran again on merged patches.
func ValidateCentre(c *types.ShoppingCentre) error {
	var violations []string
	if c.Name == "" {
		violations = append(violations, "name is required")
	}
	if c.AddressLineOne == "" {
		violations = append(violations, "address line one is required")
	}
	if c.City == "" {
		violations = append(violations, "city is required")
	}
	if c.State == "" {
		violations = append(violations, "state is required")
	}
	if c.PostalCode == "" {
		violations = append(violations, "postal code is required")
	}
	if c.Country == "" {
		violations = append(violations, "country is required")
	}
	return apperrors.NewValidation(violations)
}

func ValidateLocation(l *types.CentreLocation) error {
	var violations []string
	if l.CentreID == "" {
		violations = append(violations, "centre id is required")
	}
	if l.Code == "" {
		violations = append(violations, "code is required")
	}
	return apperrors.NewValidation(violations)
}

func ValidateAsset(a *types.Asset) error {
	var violations []string
	if a.Name == "" {
		violations = append(violations, "name is required")
	}
	if a.Length <= 0 {
		violations = append(violations, "length must be a positive number")
	}
	if a.Breadth <= 0 {
		violations = append(violations, "breadth must be a positive number")
	}
	if a.Depth <= 0 {
		violations = append(violations, "depth must be a positive number")
	}
	return apperrors.NewValidation(violations)
}
