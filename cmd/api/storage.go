package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	catalogDomain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
)

// storage bundles the repositories of the selected driver.
type storage struct {
	appointments domain.Repository
	catalog      catalogDomain.Repository
	audit        audit.Store
	health       func(ctx context.Context) error
	closer       io.Closer
}

func (s *storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func openStorage(cfg config.DBConfig, log *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		store := infraRepo.NewMemoryStore()
		return &storage{
			appointments: store,
			catalog:      store,
			audit:        store,
		}, nil

	case config.DriverPostgres:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &storage{
			appointments: infraRepo.NewAppointmentGormRepository(db),
			catalog:      infraRepo.NewCatalogGormRepository(db),
			audit:        infraRepo.NewAuditGormRepository(db),
			health:       sqlDB.PingContext,
			closer:       sqlDB,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
