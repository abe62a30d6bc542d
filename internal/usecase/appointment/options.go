package appointment

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type options struct {
	services      *cache.ServiceCache
	metrics       *metrics.Metrics
	contactRegion string
	logger        *slog.Logger
}

type Option func(*options)

func WithServiceCache(c *cache.ServiceCache) Option {
	return func(o *options) { o.services = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithContactRegion sets the region assumed for phone numbers written
// without a country prefix.
func WithContactRegion(region string) Option {
	return func(o *options) { o.contactRegion = region }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		contactRegion: validators.DefaultRegion,
		logger:        slog.Default(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func mapNotFound(err, to error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return to
	}
	return err
}

// lookupService reads through the catalog cache.
func lookupService(
	ctx context.Context,
	repo domain.Repository,
	services *cache.ServiceCache,
	id uint,
) (*models.Service, error) {

	if s, ok := services.Get(id); ok {
		return s, nil
	}

	s, err := repo.GetService(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrServiceNotFound)
	}
	services.Store(*s)
	return s, nil
}
