package appointment_test

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval(t *testing.T) {
	iv, err := appointment.NewInterval(at(2026, 3, 3, 10, 0), 45*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, at(2026, 3, 3, 10, 45), iv.End)

	_, err = appointment.NewInterval(at(2026, 3, 3, 10, 0), 0)
	assert.ErrorIs(t, err, appointment.ErrEmptyInterval)
}

func TestOverlaps(t *testing.T) {
	base := appointment.Interval{Start: at(2026, 3, 3, 10, 0), End: at(2026, 3, 3, 10, 30)}

	cases := []struct {
		name  string
		other appointment.Interval
		want  bool
	}{
		{"identical", base, true},
		{"back to back after", appointment.Interval{Start: at(2026, 3, 3, 10, 30), End: at(2026, 3, 3, 11, 0)}, false},
		{"back to back before", appointment.Interval{Start: at(2026, 3, 3, 9, 30), End: at(2026, 3, 3, 10, 0)}, false},
		{"partial", appointment.Interval{Start: at(2026, 3, 3, 10, 15), End: at(2026, 3, 3, 10, 45)}, true},
		{"contained", appointment.Interval{Start: at(2026, 3, 3, 10, 5), End: at(2026, 3, 3, 10, 10)}, true},
		{"containing", appointment.Interval{Start: at(2026, 3, 3, 9, 0), End: at(2026, 3, 3, 12, 0)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []models.Appointment{
		{BarberID: 1, Kind: "booking", StartTime: at(2026, 3, 3, 10, 0), EndTime: at(2026, 3, 3, 10, 30)},
		{BarberID: 2, Kind: "booking", StartTime: at(2026, 3, 3, 10, 30), EndTime: at(2026, 3, 3, 11, 0)},
	}

	next := appointment.Interval{Start: at(2026, 3, 3, 10, 30), End: at(2026, 3, 3, 11, 0)}
	assert.False(t, appointment.HasConflict(existing, 1, next), "back-to-back is allowed")
	assert.True(t, appointment.HasConflict(existing, 2, next))

	early := appointment.Interval{Start: at(2026, 3, 3, 9, 45), End: at(2026, 3, 3, 10, 15)}
	assert.True(t, appointment.HasConflict(existing, 1, early))
	assert.False(t, appointment.HasConflict(existing, 3, early))
}
