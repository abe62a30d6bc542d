package catalog_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

func policy() domain.Policy {
	p := domain.DefaultPolicy()
	p.Location = time.UTC
	return p
}

func TestBarberCascadeDelete(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	barbers := catalog.NewBarbers(store, nil, nil)
	services := catalog.NewServices(store, nil, nil, 30*time.Minute)

	b, err := barbers.Create(ctx, catalog.CreateBarberInput{Name: "Javier Trim"})
	require.NoError(t, err)
	s, err := services.Create(ctx, catalog.CreateServiceInput{Name: "Corte", Price: decimal.NewFromInt(30)})
	require.NoError(t, err)

	create := appointment.NewCreateAppointment(store, policy(), nil)
	for _, h := range []int{9, 11, 13} {
		_, err := create.Execute(ctx, appointment.CreateAppointmentInput{
			BarberID: b.ID, ServiceID: s.ID, ClientName: "Ana",
			Start: time.Date(2026, 3, 3, h, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	other, err := barbers.Create(ctx, catalog.CreateBarberInput{Name: "Ana Styles"})
	require.NoError(t, err)
	kept, err := create.Execute(ctx, appointment.CreateAppointmentInput{
		BarberID: other.ID, ServiceID: s.ID, ClientName: "Luis",
		Start: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	removed, err := barbers.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	left, err := store.ListAppointments(ctx, domain.ListQuery{IncludeAbsences: true})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].ID)
	assert.Equal(t, other.ID, left[0].BarberID)

	_, err = barbers.Delete(ctx, b.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}

func TestBarberUpdate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	barbers := catalog.NewBarbers(store, nil, nil)

	monday := 1
	b, err := barbers.Create(ctx, catalog.CreateBarberInput{Name: "Carlos", DayOff: &monday})
	require.NoError(t, err)
	assert.True(t, b.Active)

	inactive := false
	name := " Carlos The Blade "
	updated, err := barbers.Update(ctx, catalog.UpdateBarberInput{ID: b.ID, Name: &name, ClearDayOff: true, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Carlos The Blade", updated.Name)
	assert.Nil(t, updated.DayOff)
	assert.False(t, updated.Active)

	visible, err := barbers.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := barbers.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	bad := 9
	_, err = barbers.Update(ctx, catalog.UpdateBarberInput{ID: b.ID, DayOff: &bad})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c, err := cache.NewServiceCache(8, nil)
	require.NoError(t, err)
	services := catalog.NewServices(store, nil, c, 30*time.Minute)

	s, err := services.Create(ctx, catalog.CreateServiceInput{Name: "Barba", Price: decimal.RequireFromString("20.005")})
	require.NoError(t, err)
	assert.Equal(t, 30, s.DurationMin, "default duration")
	assert.Equal(t, "20.01", s.Price.StringFixed(2))

	c.Store(*s)
	longer := 45
	updated, err := services.Update(ctx, catalog.UpdateServiceInput{ID: s.ID, DurationMin: &longer})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DurationMin)
	_, cached := c.Get(s.ID)
	assert.False(t, cached, "update invalidates the cache")

	negative := decimal.NewFromInt(-5)
	_, err = services.Update(ctx, catalog.UpdateServiceInput{ID: s.ID, Price: &negative})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	removed, err := services.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = services.Update(ctx, catalog.UpdateServiceInput{ID: s.ID, DurationMin: &longer})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}

type fakePhotos struct{ got []byte }

func (f *fakePhotos) UploadBarberPhoto(_ context.Context, barberID uint, r io.Reader) (string, error) {
	f.got, _ = io.ReadAll(r)
	return "https://cdn.example.com/barbers/x.webp", nil
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	disabled := catalog.NewBarbers(store, nil, nil)
	b, err := disabled.Create(ctx, catalog.CreateBarberInput{Name: "Rick Classic"})
	require.NoError(t, err)

	_, err = disabled.UploadPhoto(ctx, b.ID, bytes.NewReader([]byte("img")))
	assert.ErrorIs(t, err, catalog.ErrPhotosDisabled)

	photos := &fakePhotos{}
	enabled := catalog.NewBarbers(store, nil, photos)
	updated, err := enabled.UploadPhoto(ctx, b.ID, bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/barbers/x.webp", updated.PhotoURL)
	assert.Equal(t, []byte("img"), photos.got)

	stored, err := store.GetBarber(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.PhotoURL, stored.PhotoURL)
}
