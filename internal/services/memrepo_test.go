package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// In-memory repo fakes. They ignore the tx handle; memTxManager gives
// the all-or-nothing semantics by snapshotting the store before fn and
// restoring it when fn fails.

type memStore struct {
	centres     map[string]types.ShoppingCentre
	locations   map[string]types.CentreLocation
	assets      map[string]types.Asset
	allocations map[string]types.AssetAllocation
	changeLog   []types.ChangeLogEntry

	failChangeLog bool
}

func newMemStore() *memStore {
	return &memStore{
		centres:     map[string]types.ShoppingCentre{},
		locations:   map[string]types.CentreLocation{},
		assets:      map[string]types.Asset{},
		allocations: map[string]types.AssetAllocation{},
	}
}

func (s *memStore) snapshot() memStore {
	snap := memStore{
		centres:     make(map[string]types.ShoppingCentre, len(s.centres)),
		locations:   make(map[string]types.CentreLocation, len(s.locations)),
		assets:      make(map[string]types.Asset, len(s.assets)),
		allocations: make(map[string]types.AssetAllocation, len(s.allocations)),
		changeLog:   append([]types.ChangeLogEntry(nil), s.changeLog...),
	}
	for k, v := range s.centres {
		snap.centres[k] = v
	}
	for k, v := range s.locations {
		snap.locations[k] = v
	}
	for k, v := range s.assets {
		snap.assets[k] = v
	}
	for k, v := range s.allocations {
		snap.allocations[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memStore) {
	s.centres = snap.centres
	s.locations = snap.locations
	s.assets = snap.assets
	s.allocations = snap.allocations
	s.changeLog = snap.changeLog
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type memCentreRepo struct{ store *memStore }

func (r *memCentreRepo) Create(_ context.Context, _ *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error) {
	r.store.centres[centre.ID] = *centre
	return centre, nil
}

func (r *memCentreRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*types.ShoppingCentre, error) {
	if c, ok := r.store.centres[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (r *memCentreRepo) FindActiveByName(_ context.Context, _ *gorm.DB, name string) (*types.ShoppingCentre, error) {
	for _, c := range r.store.centres {
		if c.Status == types.StatusActive && strings.EqualFold(c.Name, name) {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memCentreRepo) FindActiveByAddress(_ context.Context, _ *gorm.DB, lineOne, city, state, postalCode, country string) (*types.ShoppingCentre, error) {
	for _, c := range r.store.centres {
		if c.Status == types.StatusActive &&
			strings.EqualFold(c.AddressLineOne, lineOne) &&
			strings.EqualFold(c.City, city) &&
			strings.EqualFold(c.State, state) &&
			strings.EqualFold(c.PostalCode, postalCode) &&
			strings.EqualFold(c.Country, country) {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memCentreRepo) ListActive(_ context.Context, _ *gorm.DB) ([]*types.ShoppingCentre, error) {
	var results []*types.ShoppingCentre
	for _, c := range r.store.centres {
		if c.Status == types.StatusActive {
			out := c
			results = append(results, &out)
		}
	}
	return results, nil
}

func (r *memCentreRepo) Save(_ context.Context, _ *gorm.DB, centre *types.ShoppingCentre) (*types.ShoppingCentre, error) {
	r.store.centres[centre.ID] = *centre
	return centre, nil
}

type memLocationRepo struct{ store *memStore }

func (r *memLocationRepo) Create(_ context.Context, _ *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error) {
	r.store.locations[location.ID] = *location
	return location, nil
}

func (r *memLocationRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*types.CentreLocation, error) {
	if l, ok := r.store.locations[id]; ok {
		out := l
		return &out, nil
	}
	return nil, nil
}

func (r *memLocationRepo) FindActiveByCentreAndCode(_ context.Context, _ *gorm.DB, centreID, code string) (*types.CentreLocation, error) {
	for _, l := range r.store.locations {
		if l.Status == types.StatusActive && l.CentreID == centreID && strings.EqualFold(l.Code, code) {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) ListActiveByCentreID(_ context.Context, _ *gorm.DB, centreID string) ([]*types.CentreLocation, error) {
	var results []*types.CentreLocation
	for _, l := range r.store.locations {
		if l.Status == types.StatusActive && l.CentreID == centreID {
			out := l
			results = append(results, &out)
		}
	}
	return results, nil
}

func (r *memLocationRepo) Save(_ context.Context, _ *gorm.DB, location *types.CentreLocation) (*types.CentreLocation, error) {
	r.store.locations[location.ID] = *location
	return location, nil
}

type memAssetRepo struct{ store *memStore }

func (r *memAssetRepo) Create(_ context.Context, _ *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	r.store.assets[asset.ID] = *asset
	return asset, nil
}

func (r *memAssetRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*types.Asset, error) {
	if a, ok := r.store.assets[id]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (r *memAssetRepo) ListActive(_ context.Context, _ *gorm.DB) ([]*types.Asset, error) {
	var results []*types.Asset
	for _, a := range r.store.assets {
		if a.Status == types.StatusActive {
			out := a
			results = append(results, &out)
		}
	}
	return results, nil
}

func (r *memAssetRepo) Save(_ context.Context, _ *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	r.store.assets[asset.ID] = *asset
	return asset, nil
}

type memAllocationRepo struct{ store *memStore }

func (r *memAllocationRepo) Create(_ context.Context, _ *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error) {
	// Mirror the store's partial unique indexes.
	for _, a := range r.store.allocations {
		if a.Status != types.StatusActive {
			continue
		}
		if a.AssetID == allocation.AssetID || a.LocationID == allocation.LocationID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	r.store.allocations[allocation.ID] = *allocation
	return allocation, nil
}

func (r *memAllocationRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*types.AssetAllocation, error) {
	if a, ok := r.store.allocations[id]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (r *memAllocationRepo) FindActiveByAssetID(_ context.Context, _ *gorm.DB, assetID string) (*types.AssetAllocation, error) {
	for _, a := range r.store.allocations {
		if a.Status == types.StatusActive && a.AssetID == assetID {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memAllocationRepo) FindActiveByLocationID(_ context.Context, _ *gorm.DB, locationID string) (*types.AssetAllocation, error) {
	for _, a := range r.store.allocations {
		if a.Status == types.StatusActive && a.LocationID == locationID {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memAllocationRepo) ListActiveByLocationIDs(_ context.Context, _ *gorm.DB, locationIDs []string) ([]*types.AssetAllocation, error) {
	ids := make(map[string]struct{}, len(locationIDs))
	for _, id := range locationIDs {
		ids[id] = struct{}{}
	}
	var results []*types.AssetAllocation
	for _, a := range r.store.allocations {
		if a.Status != types.StatusActive {
			continue
		}
		if _, ok := ids[a.LocationID]; ok {
			out := a
			results = append(results, &out)
		}
	}
	return results, nil
}

func (r *memAllocationRepo) Save(_ context.Context, _ *gorm.DB, allocation *types.AssetAllocation) (*types.AssetAllocation, error) {
	r.store.allocations[allocation.ID] = *allocation
	return allocation, nil
}

var errChangeLogDown = errors.New("change log unavailable")

type memChangeLogRepo struct{ store *memStore }

func (r *memChangeLogRepo) Create(_ context.Context, _ *gorm.DB, entries []*types.ChangeLogEntry) ([]*types.ChangeLogEntry, error) {
	if r.store.failChangeLog {
		return nil, errChangeLogDown
	}
	for _, e := range entries {
		r.store.changeLog = append(r.store.changeLog, *e)
	}
	return entries, nil
}

func (r *memChangeLogRepo) ListByEntity(_ context.Context, _ *gorm.DB, entityType, entityID string) ([]*types.ChangeLogEntry, error) {
	var results []*types.ChangeLogEntry
	for i := range r.store.changeLog {
		e := r.store.changeLog[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			results = append(results, &e)
		}
	}
	return results, nil
}
