package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestServiceCache(t *testing.T) {
	c, err := cache.NewServiceCache(2, nil)
	require.NoError(t, err)

	c.Store(models.Service{ID: 1, Name: "Corte", DurationMin: 30})
	c.Store(models.Service{ID: 2, Name: "Barba", DurationMin: 30})

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Corte", got.Name)

	// 2 is now least recently used
	c.Store(models.Service{ID: 3, Name: "Corte Niño", DurationMin: 30})
	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Invalidate(1)
	_, ok = c.Get(1)
	assert.False(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestServiceCacheDisabled(t *testing.T) {
	c, err := cache.NewServiceCache(0, nil)
	require.NoError(t, err)

	c.Store(models.Service{ID: 1})
	_, ok := c.Get(1)
	assert.False(t, ok)

	var nilCache *cache.ServiceCache
	assert.NotPanics(t, func() {
		nilCache.Store(models.Service{ID: 1})
		nilCache.Invalidate(1)
	})
}
