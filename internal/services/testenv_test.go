package services

import (
	"context"
	"testing"

	"github.com/panelgrid/panelgrid-backend/internal/domain"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/ids"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

type testEnv struct {
	store   *memStore
	centres CentreService
	assets  AssetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	log := logger.NewNop()
	gen := ids.NewUUIDv7Generator()
	factory := domain.NewFactory(gen)
	txm := &memTxManager{store: store}
	centreRepo := &memCentreRepo{store: store}
	locationRepo := &memLocationRepo{store: store}
	assetRepo := &memAssetRepo{store: store}
	allocationRepo := &memAllocationRepo{store: store}
	changeLog := NewChangeLogRecorder(log, gen, &memChangeLogRepo{store: store})
	return &testEnv{
		store:   store,
		centres: NewCentreService(txm, log, factory, centreRepo, locationRepo, allocationRepo, changeLog),
		assets:  NewAssetService(txm, log, factory, assetRepo, centreRepo, locationRepo, allocationRepo, changeLog),
	}
}

func (e *testEnv) mustCreateCentre(t *testing.T, name string) *types.ShoppingCentre {
	t.Helper()
	centre, err := e.centres.CreateCentre(context.Background(), domain.CentreFields{
		Name:           name,
		AddressLineOne: name + " street 1",
		City:           "Sydney",
		State:          "NSW",
		PostalCode:     "2000",
		Country:        "AU",
	})
	if err != nil {
		t.Fatalf("CreateCentre(%q): %v", name, err)
	}
	return centre
}

func (e *testEnv) mustAddLocation(t *testing.T, centreID, code string) *types.CentreLocation {
	t.Helper()
	location, err := e.centres.AddLocation(context.Background(), centreID, domain.LocationFields{Code: code})
	if err != nil {
		t.Fatalf("AddLocation(%q): %v", code, err)
	}
	return location
}

func (e *testEnv) mustCreateAsset(t *testing.T, name string) *types.Asset {
	t.Helper()
	asset, err := e.assets.CreateAsset(context.Background(), domain.AssetFields{
		Name:    name,
		Length:  120,
		Breadth: 80,
		Depth:   10,
	})
	if err != nil {
		t.Fatalf("CreateAsset(%q): %v", name, err)
	}
	return asset
}
