package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var errServiceNotFound = httperr.ErrBusiness(httperr.CodeServiceNotFound)

// ======================================================
// SERVICES
// ======================================================

type Services struct {
	repo            domain.Repository
	audit           *audit.Dispatcher
	cache           *cache.ServiceCache
	defaultDuration time.Duration
}

func NewServices(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.ServiceCache,
	defaultDuration time.Duration,
) *Services {
	if defaultDuration <= 0 {
		defaultDuration = 30 * time.Minute
	}
	return &Services{
		repo:            repo,
		audit:           audit,
		cache:           cache,
		defaultDuration: defaultDuration,
	}
}

func (uc *Services) List(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListServices(ctx)
}

// CreateServiceInput leaves DurationMin nil to take the configured default.
type CreateServiceInput struct {
	Name        string
	Price       decimal.Decimal
	DurationMin *int
}

func (uc *Services) Create(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	if err := domain.ValidateName(in.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(in.Price); err != nil {
		return nil, err
	}

	duration := int(uc.defaultDuration / time.Minute)
	if in.DurationMin != nil {
		duration = *in.DurationMin
	}
	if err := domain.ValidateDuration(duration); err != nil {
		return nil, err
	}

	s := &models.Service{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price.Round(2),
		DurationMin: duration,
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "service_created",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"name": s.Name, "price": s.Price.StringFixed(2), "duration_min": s.DurationMin},
	})
	return s, nil
}

type UpdateServiceInput struct {
	ID          uint
	Name        *string
	Price       *decimal.Decimal
	DurationMin *int
}

// Update changes a service in place. Existing appointments keep their
// materialized end time.
func (uc *Services) Update(ctx context.Context, in UpdateServiceInput) (*models.Service, error) {
	s, err := uc.repo.GetService(ctx, in.ID)
	if err != nil {
		return nil, mapNotFound(err, errServiceNotFound)
	}

	if in.Name != nil {
		if err := domain.ValidateName(*in.Name); err != nil {
			return nil, err
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if err := domain.ValidatePrice(*in.Price); err != nil {
			return nil, err
		}
		s.Price = in.Price.Round(2)
	}
	if in.DurationMin != nil {
		if err := domain.ValidateDuration(*in.DurationMin); err != nil {
			return nil, err
		}
		s.DurationMin = *in.DurationMin
	}

	if err := uc.repo.UpdateService(ctx, s); err != nil {
		return nil, mapNotFound(err, errServiceNotFound)
	}
	uc.cache.Invalidate(s.ID)

	uc.audit.Dispatch(audit.Event{
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"name": s.Name, "price": s.Price.StringFixed(2), "duration_min": s.DurationMin},
	})
	return s, nil
}

func (uc *Services) Delete(ctx context.Context, id uint) (int64, error) {
	removed, err := uc.repo.DeleteServiceCascade(ctx, id)
	if err != nil {
		return 0, mapNotFound(err, errServiceNotFound)
	}
	uc.cache.Invalidate(id)

	uc.audit.Dispatch(audit.Event{
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &id,
		Metadata: map[string]any{"appointments_removed": removed},
	})
	return removed, nil
}
