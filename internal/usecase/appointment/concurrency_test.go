package appointment_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	uc "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Many interleaved requests over few barbers and slots must never leave two
// overlapping bookings for the same barber.
func TestConcurrentBookingsNeverOverlap(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	policy := utcPolicy()
	// Capacity counts appointments, so one barber with back-to-back bookings
	// under a longer request can trip 100%. Keep the throttle out of reach.
	policy.CapacityThresholdPercent = 10000

	var barbers []models.Barber
	for _, name := range []string{"Carlos", "Ana", "Mike"} {
		b := models.Barber{Name: name, Active: true}
		require.NoError(t, store.CreateBarber(ctx, &b))
		barbers = append(barbers, b)
	}
	var services []models.Service
	for _, d := range []int{20, 30, 45, 60} {
		s := models.Service{Name: "svc", DurationMin: d}
		require.NoError(t, store.CreateService(ctx, &s))
		services = append(services, s)
	}

	create := uc.NewCreateAppointment(store, policy, nil)

	const requests = 300
	rng := rand.New(rand.NewSource(20260302))
	inputs := make([]uc.CreateAppointmentInput, requests)
	for i := range inputs {
		inputs[i] = uc.CreateAppointmentInput{
			BarberID:   barbers[rng.Intn(len(barbers))].ID,
			ServiceID:  services[rng.Intn(len(services))].ID,
			ClientName: "client",
			Start:      at(3, 9+rng.Intn(4), 5*rng.Intn(12)),
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for _, in := range inputs {
		wg.Add(1)
		go func(in uc.CreateAppointmentInput) {
			defer wg.Done()
			_, err := create.Execute(ctx, in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case httperr.IsBusiness(err, httperr.CodeTimeConflict):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(in)
	}
	wg.Wait()

	all, err := store.ListAppointments(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, created)
	assert.Equal(t, requests, created+rejected)
	assert.Positive(t, created)

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].BarberID != all[j].BarberID {
				continue
			}
			assert.False(t,
				domain.IntervalOf(&all[i]).Overlaps(domain.IntervalOf(&all[j])),
				"barber %d has overlapping bookings %d and %d", all[i].BarberID, all[i].ID, all[j].ID,
			)
		}
	}
}
