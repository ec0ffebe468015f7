package repos

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
)

// openTestDB spins up an in-memory sqlite store with the same schema
// shape the postgres adapter builds, including the partial unique
// indexes backing the exclusivity invariants.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&types.ShoppingCentre{},
		&types.CentreLocation{},
		&types.Asset{},
		&types.AssetAllocation{},
		&types.ChangeLogEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_centre_name_active
			ON shopping_centre (LOWER(name)) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_location_centre_code_active
			ON location_within_centre (centre_id, LOWER(code)) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_allocation_asset_active
			ON asset_allocation (asset_id) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_allocation_location_active
			ON asset_allocation (location_id) WHERE status = 'active'`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("index DDL: %v", err)
		}
	}
	return db
}

func testCentre(id, name string) *types.ShoppingCentre {
	now := time.Now().UTC()
	return &types.ShoppingCentre{
		ID:             id,
		Name:           name,
		AddressLineOne: name + " street",
		City:           "Sydney",
		State:          "NSW",
		PostalCode:     "2000",
		Country:        "AU",
		Active:         true,
		Status:         types.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCentreRepoRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewCentreRepo(db, logger.NewNop())
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, testCentre("c1", "Westfield")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Westfield" {
		t.Fatalf("GetByID returned %+v", got)
	}

	missing, err := repo.GetByID(ctx, nil, "nope")
	if err != nil {
		t.Fatalf("GetByID absent: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID absent returned %+v, want nil", missing)
	}
}

func TestCentreRepoFindActiveByNameCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	repo := NewCentreRepo(db, logger.NewNop())
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, testCentre("c1", "Westfield Bondi")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindActiveByName(ctx, nil, "WESTFIELD bondi")
	if err != nil {
		t.Fatalf("FindActiveByName: %v", err)
	}
	if got == nil || got.ID != "c1" {
		t.Fatalf("FindActiveByName returned %+v", got)
	}

	// A soft-deleted centre no longer matches.
	got.Status = types.StatusDeleted
	if _, err := repo.Save(ctx, nil, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	gone, err := repo.FindActiveByName(ctx, nil, "Westfield Bondi")
	if err != nil {
		t.Fatalf("FindActiveByName after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("soft-deleted centre still found: %+v", gone)
	}
}

func TestCentreRepoFindActiveByAddress(t *testing.T) {
	db := openTestDB(t)
	repo := NewCentreRepo(db, logger.NewNop())
	ctx := context.Background()

	c := testCentre("c1", "Addressed")
	if _, err := repo.Create(ctx, nil, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindActiveByAddress(ctx, nil, strings.ToUpper(c.AddressLineOne), "sydney", "nsw", "2000", "au")
	if err != nil {
		t.Fatalf("FindActiveByAddress: %v", err)
	}
	if got == nil || got.ID != "c1" {
		t.Fatalf("FindActiveByAddress returned %+v", got)
	}
	none, err := repo.FindActiveByAddress(ctx, nil, c.AddressLineOne, "Melbourne", "VIC", "3000", "AU")
	if err != nil {
		t.Fatalf("FindActiveByAddress mismatch: %v", err)
	}
	if none != nil {
		t.Fatalf("unexpected match: %+v", none)
	}
}

func TestLocationRepoCentreScopedLookup(t *testing.T) {
	db := openTestDB(t)
	repo := NewLocationRepo(db, logger.NewNop())
	ctx := context.Background()
	now := time.Now().UTC()

	for _, l := range []*types.CentreLocation{
		{ID: "l1", CentreID: "c1", Code: "A1", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "l2", CentreID: "c2", Code: "A1", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "l3", CentreID: "c1", Code: "A2", Status: types.StatusDeleted, CreatedAt: now, UpdatedAt: now},
	} {
		if _, err := repo.Create(ctx, nil, l); err != nil {
			t.Fatalf("Create %s: %v", l.ID, err)
		}
	}

	got, err := repo.FindActiveByCentreAndCode(ctx, nil, "c1", "a1")
	if err != nil {
		t.Fatalf("FindActiveByCentreAndCode: %v", err)
	}
	if got == nil || got.ID != "l1" {
		t.Fatalf("lookup returned %+v, want l1", got)
	}

	deleted, err := repo.FindActiveByCentreAndCode(ctx, nil, "c1", "A2")
	if err != nil {
		t.Fatalf("FindActiveByCentreAndCode deleted: %v", err)
	}
	if deleted != nil {
		t.Fatalf("soft-deleted location still found: %+v", deleted)
	}

	active, err := repo.ListActiveByCentreID(ctx, nil, "c1")
	if err != nil {
		t.Fatalf("ListActiveByCentreID: %v", err)
	}
	if len(active) != 1 || active[0].ID != "l1" {
		t.Fatalf("ListActiveByCentreID returned %d rows", len(active))
	}
}

func TestAllocationRepoUniqueActivePerLocation(t *testing.T) {
	db := openTestDB(t)
	repo := NewAllocationRepo(db, logger.NewNop())
	ctx := context.Background()
	now := time.Now().UTC()

	first := &types.AssetAllocation{ID: "al1", AssetID: "a1", CentreID: "c1", LocationID: "l1", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now}
	if _, err := repo.Create(ctx, nil, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Second active row for the same location must hit the partial index.
	dup := &types.AssetAllocation{ID: "al2", AssetID: "a2", CentreID: "c1", LocationID: "l1", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now}
	if _, err := repo.Create(ctx, nil, dup); err == nil {
		t.Fatalf("expected unique violation for second active allocation on l1")
	}

	// Removing the first frees the location.
	first.Status = types.StatusRemoved
	if _, err := repo.Save(ctx, nil, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.Create(ctx, nil, dup); err != nil {
		t.Fatalf("Create after removal: %v", err)
	}

	got, err := repo.FindActiveByLocationID(ctx, nil, "l1")
	if err != nil {
		t.Fatalf("FindActiveByLocationID: %v", err)
	}
	if got == nil || got.ID != "al2" {
		t.Fatalf("FindActiveByLocationID returned %+v, want al2", got)
	}
	byAsset, err := repo.FindActiveByAssetID(ctx, nil, "a1")
	if err != nil {
		t.Fatalf("FindActiveByAssetID: %v", err)
	}
	if byAsset != nil {
		t.Fatalf("removed allocation still active by asset: %+v", byAsset)
	}
}

func TestAllocationRepoListActiveByLocationIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewAllocationRepo(db, logger.NewNop())
	ctx := context.Background()
	now := time.Now().UTC()

	rows := []*types.AssetAllocation{
		{ID: "al1", AssetID: "a1", CentreID: "c1", LocationID: "l1", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "al2", AssetID: "a2", CentreID: "c1", LocationID: "l2", Status: types.StatusRemoved, CreatedAt: now, UpdatedAt: now},
		{ID: "al3", AssetID: "a3", CentreID: "c1", LocationID: "l3", Status: types.StatusActive, CreatedAt: now, UpdatedAt: now},
	}
	for _, r := range rows {
		if _, err := repo.Create(ctx, nil, r); err != nil {
			t.Fatalf("Create %s: %v", r.ID, err)
		}
	}

	got, err := repo.ListActiveByLocationIDs(ctx, nil, []string{"l1", "l2", "l3"})
	if err != nil {
		t.Fatalf("ListActiveByLocationIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d active allocations, want 2", len(got))
	}
	empty, err := repo.ListActiveByLocationIDs(ctx, nil, nil)
	if err != nil {
		t.Fatalf("ListActiveByLocationIDs(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty input returned %d rows", len(empty))
	}
}

func TestChangeLogRepoAppendAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewChangeLogRepo(db, logger.NewNop())
	ctx := context.Background()

	base := time.Now().UTC()
	entries := []*types.ChangeLogEntry{
		{ID: "e1", EntityType: types.EntityAsset, EntityID: "a1", Operation: types.OpCreate, AfterState: []byte(`{"id":"a1"}`), ActorRef: "tester", CreatedAt: base},
		{ID: "e2", EntityType: types.EntityAsset, EntityID: "a1", Operation: types.OpUpdate, BeforeState: []byte(`{"id":"a1"}`), AfterState: []byte(`{"id":"a1","active":false}`), ActorRef: "tester", CreatedAt: base.Add(time.Second)},
	}
	if _, err := repo.Create(ctx, nil, entries); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.ListByEntity(ctx, nil, types.EntityAsset, "a1")
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Operation != types.OpCreate || got[1].Operation != types.OpUpdate {
		t.Fatalf("entries out of order: %s, %s", got[0].Operation, got[1].Operation)
	}
}

func TestRepoHonoursSuppliedTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := NewCentreRepo(db, logger.NewNop())
	ctx := context.Background()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("Begin: %v", tx.Error)
	}
	if _, err := repo.Create(ctx, tx, testCentre("c-tx", "Rolled Back")); err != nil {
		t.Fatalf("Create in tx: %v", err)
	}
	tx.Rollback()

	got, err := repo.GetByID(ctx, nil, "c-tx")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("row survived rollback: %+v", got)
	}
}
