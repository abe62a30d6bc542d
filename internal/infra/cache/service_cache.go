package cache

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ServiceCache keeps recently used catalog services in memory. A nil cache,
// or one built with size <= 0, behaves as always-miss.
type ServiceCache struct {
	cache  *lru.Cache[uint, models.Service]
	logger *slog.Logger
}

func NewServiceCache(size int, logger *slog.Logger) (*ServiceCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		return &ServiceCache{logger: logger}, nil
	}

	c, err := lru.New[uint, models.Service](size)
	if err != nil {
		return nil, err
	}
	return &ServiceCache{cache: c, logger: logger}, nil
}

func (c *ServiceCache) enabled() bool {
	return c != nil && c.cache != nil
}

func (c *ServiceCache) Get(id uint) (*models.Service, bool) {
	if !c.enabled() {
		return nil, false
	}

	s, ok := c.cache.Get(id)
	if !ok {
		c.logger.Debug("cache.service.miss", "service_id", id)
		return nil, false
	}
	return &s, true
}

func (c *ServiceCache) Store(s models.Service) {
	if !c.enabled() {
		return
	}
	c.cache.Add(s.ID, s)
}

func (c *ServiceCache) Invalidate(id uint) {
	if !c.enabled() {
		return
	}
	c.cache.Remove(id)
}

func (c *ServiceCache) Purge() {
	if !c.enabled() {
		return
	}
	c.cache.Purge()
}

func (c *ServiceCache) Len() int {
	if !c.enabled() {
		return 0
	}
	return c.cache.Len()
}
