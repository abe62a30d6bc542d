package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	catalogDomain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// Deps are the long-lived singletons the routes are built from.
type Deps struct {
	Config  *config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics

	Appointments domain.Repository
	Catalog      catalogDomain.Repository
	AuditLogs    handlers.AuditLogReader
	Audit        *audit.Dispatcher

	Idempotency idempotency.Store
	Services    *cache.ServiceCache

	// Nil disables photo uploads.
	Photos ucCatalog.PhotoUploader

	// Health reports storage reachability. Nil means always healthy.
	Health func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config
	policy := cfg.Shop.Policy()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logging(d.Log, d.Metrics),
		middleware.CORSMiddleware(cfg.CORS, d.Log),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	ucOpts := []ucAppointment.Option{
		ucAppointment.WithServiceCache(d.Services),
		ucAppointment.WithMetrics(d.Metrics),
		ucAppointment.WithContactRegion(cfg.Shop.ContactRegion),
		ucAppointment.WithLogger(d.Log),
	}

	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Appointments, policy, d.Audit, ucOpts...)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments, policy)
	removeAppointmentUC := ucAppointment.NewRemoveAppointment(d.Appointments, d.Audit)
	blockBarberUC := ucAppointment.NewBlockBarber(d.Appointments, policy, d.Audit, ucOpts...)
	availabilityUC := ucAppointment.NewGetAvailability(d.Appointments, policy, ucOpts...)

	barbersUC := ucCatalog.NewBarbers(d.Catalog, d.Audit, d.Photos)
	servicesUC := ucCatalog.NewServices(d.Catalog, d.Audit, d.Services, policy.DefaultServiceDuration)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(cfg.Auth)
	if err != nil {
		return err
	}

	appointmentHandler := handlers.NewAppointmentHandler(
		policy,
		createAppointmentUC,
		listAppointmentsUC,
		removeAppointmentUC,
		blockBarberUC,
		d.Appointments,
		d.Idempotency,
		d.Log,
	)
	publicHandler := handlers.NewPublicHandler(barbersUC, servicesUC, availabilityUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(policy)
	barberHandler := handlers.NewBarberHandler(barbersUC)
	serviceHandler := handlers.NewServiceHandler(servicesUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", healthHandler(d.Health))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbers", publicHandler.ListBarbers)
		api.GET("/services", publicHandler.ListServices)
		api.GET("/hours", workingHoursHandler.Get)
		api.GET("/barbers/:id/availability", publicHandler.Availability)
		api.POST("/appointments", appointmentHandler.Create)

		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/appointments", appointmentHandler.List)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/admin/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)
			secured.DELETE("/barbers/:id", barberHandler.Delete)
			secured.PUT("/barbers/:id/photo", barberHandler.UploadPhoto)
			secured.POST("/barbers/:id/absences", appointmentHandler.BlockBarber)

			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
