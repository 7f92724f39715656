package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/smart-hire/internal/config"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.AvailabilityRule{},
		&models.AvailabilitySettings{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Two active bookings of one provider can never overlap, whatever the
	// application does.
	if err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
			) THEN
				ALTER TABLE bookings
				ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (
					provider_id WITH =,
					tstzrange(start_at, end_at, '[)') WITH &&
				) WHERE (status <> 'cancelled');
			END IF;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("add booking overlap constraint: %w", err)
	}

	return nil
}
