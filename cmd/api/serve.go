package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/barber-booking/internal/infra/photo"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
)

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}

			log, logCloser := logger.New(cfg.Log)
			defer logCloser.Close()
			slog.SetDefault(log)

			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// INFRA
	// ======================================================
	store, err := openStorage(cfg.DB, log)
	if err != nil {
		return err
	}
	defer store.Close()

	dispatcher := audit.NewDispatcher(audit.New(store.audit), log)
	defer dispatcher.Close()

	services, err := cache.NewServiceCache(cfg.Cache.ServiceCacheSize, log)
	if err != nil {
		return err
	}

	idem, closeIdem, err := openIdempotency(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeIdem()

	deps := routes.Deps{
		Config:       cfg,
		Log:          log,
		Metrics:      metrics.New(cfg.Metrics.Namespace),
		Appointments: store.appointments,
		Catalog:      store.catalog,
		AuditLogs:    store.audit,
		Audit:        dispatcher,
		Idempotency:  idem,
		Services:     services,
		Health:       store.health,
	}

	s3cfg := photo.S3Config(cfg.S3)
	if s3cfg.Enabled() {
		objects, err := photo.NewS3Store(s3cfg)
		if err != nil {
			return err
		}
		deps.Photos = photo.NewUploader(photo.NewProcessor(), objects)
		log.Info("photo uploads enabled", "bucket", s3cfg.Bucket)
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	if err := routes.RegisterRoutes(r, deps); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "storage", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// openIdempotency prefers Redis and falls back to process memory.
func openIdempotency(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (idempotency.Store, func(), error) {
	if cfg.Addr == "" {
		log.Info("idempotency keys kept in memory")
		return idempotency.NewMemoryStore(cfg.IdempotencyTTL), func() {}, nil
	}

	rdb, err := idempotency.NewRedisClient(ctx, idempotency.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info("idempotency keys kept in redis", "addr", cfg.Addr)
	return idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL), func() { _ = rdb.Close() }, nil
}
