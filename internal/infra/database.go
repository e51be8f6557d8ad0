package infra

import (
	"fmt"

	"github.com/Jcgmtxt/aquashield/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map driver-specific duplicate-key errors to gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the GORM schema plus SQL-only patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Client{},
		&model.Car{},
		&model.Service{},
		&model.CheckIn{},
		&model.ServiceCheckIn{},
		&model.PricingVersion{},
		&model.SizeTierPrice{},
		&model.ExceptionPrice{},
		&model.AppliedService{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the active-version lookup on every quote
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pricing_versions_active') THEN
		    CREATE INDEX idx_pricing_versions_active
		        ON pricing_versions (service_id, effective_date DESC)
		        WHERE end_date IS NULL;
		  END IF;
		END $$`,
		// Partial index for the active-exception scan (skips deactivated rows)
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_most_used_vehicles_active') THEN
		    CREATE INDEX idx_most_used_vehicles_active
		        ON most_used_vehicles (version_id, created_at)
		        WHERE is_active = true;
		  END IF;
		END $$`,
		// Stats queries group by kind over a date range
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_applied_services_kind_date') THEN
		    CREATE INDEX idx_applied_services_kind_date
		        ON applied_services (service_kind, created_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
