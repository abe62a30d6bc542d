package db

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg config.DBConfig, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", "max_open_conns", cfg.MaxOpenConns)
	return db, nil
}

// constraints are applied after AutoMigrate. Each one is idempotent.
var constraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`DO $$ BEGIN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_end_after_start CHECK (end_time > start_time);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_kind_valid CHECK (kind IN ('booking', 'absence'));
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	// No two bookings of the same barber may overlap. Absence sentinels are
	// excluded so a day can be blocked on top of existing bookings.
	`DO $$ BEGIN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				barber_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			) WHERE (kind = 'booking');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		ALTER TABLE services
			ADD CONSTRAINT services_price_non_negative CHECK (price >= 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	return nil
}
