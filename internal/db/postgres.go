package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/types"
	"github.com/panelgrid/panelgrid-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "panelgrid", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	// TranslateError stays off: the services classify raw *pgconn.PgError
	// unique violations by constraint name.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.ShoppingCentre{},
		&types.CentreLocation{},
		&types.Asset{},
		&types.AssetAllocation{},
		&types.ChangeLogEntry{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return s.applyConstraints()
}

// applyConstraints adds what AutoMigrate cannot express: foreign keys,
// the partial unique indexes carrying the uniqueness and occupancy
// invariants under Read Committed, and the rules that make change_log
// insert-only at the store level.
func (s *PostgresService) applyConstraints() error {
	foreignKeys := []struct {
		table string
		name  string
		ddl   string
	}{
		{"location_within_centre", "fk_location_centre_id",
			`ALTER TABLE "location_within_centre" ADD CONSTRAINT "fk_location_centre_id"
				FOREIGN KEY ("centre_id") REFERENCES "shopping_centre"("id")`},
		{"asset_allocation", "fk_allocation_asset_id",
			`ALTER TABLE "asset_allocation" ADD CONSTRAINT "fk_allocation_asset_id"
				FOREIGN KEY ("asset_id") REFERENCES "asset"("id")`},
		{"asset_allocation", "fk_allocation_centre_id",
			`ALTER TABLE "asset_allocation" ADD CONSTRAINT "fk_allocation_centre_id"
				FOREIGN KEY ("centre_id") REFERENCES "shopping_centre"("id")`},
		{"asset_allocation", "fk_allocation_location_id",
			`ALTER TABLE "asset_allocation" ADD CONSTRAINT "fk_allocation_location_id"
				FOREIGN KEY ("location_id") REFERENCES "location_within_centre"("id")`},
	}
	for _, fk := range foreignKeys {
		var count int64
		if err := s.db.Raw(
			`SELECT COUNT(*) FROM information_schema.table_constraints
				WHERE table_name = ? AND constraint_name = ?`,
			fk.table, fk.name).Scan(&count).Error; err != nil {
			return fmt.Errorf("constraint lookup failed: %w", err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS "uq_centre_name_active"
			ON "shopping_centre" (LOWER(name)) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "uq_centre_address_active"
			ON "shopping_centre" (LOWER(address_line_one), LOWER(city), LOWER(state), LOWER(postal_code), LOWER(country))
			WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "uq_location_centre_code_active"
			ON "location_within_centre" (centre_id, LOWER(code)) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "uq_allocation_asset_active"
			ON "asset_allocation" (asset_id) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "uq_allocation_location_active"
			ON "asset_allocation" (location_id) WHERE status = 'active'`,
		`CREATE OR REPLACE RULE "change_log_no_update" AS
			ON UPDATE TO "change_log" DO INSTEAD NOTHING`,
		`CREATE OR REPLACE RULE "change_log_no_delete" AS
			ON DELETE TO "change_log" DO INSTEAD NOTHING`,
	}
	for _, stmt := range statements {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("constraint DDL failed: %w", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
