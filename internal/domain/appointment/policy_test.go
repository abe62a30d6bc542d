package appointment_test

import (
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() appointment.Policy {
	p := appointment.DefaultPolicy()
	p.Location = time.UTC
	return p
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestIsShopOpen(t *testing.T) {
	p := testPolicy()

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"tuesday before opening", at(2026, 3, 3, 8, 59), false},
		{"tuesday at opening", at(2026, 3, 3, 9, 0), true},
		{"tuesday 18:59", at(2026, 3, 3, 18, 59), true},
		{"tuesday 19:00", at(2026, 3, 3, 19, 0), false},
		{"saturday 16:30", at(2026, 3, 7, 16, 30), true},
		{"saturday 17:00", at(2026, 3, 7, 17, 0), false},
		{"sunday noon", at(2026, 3, 8, 12, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.IsShopOpen(tc.t))
		})
	}
}

func TestIsShopOpenUsesShopTimezone(t *testing.T) {
	p := testPolicy()
	p.Location = time.FixedZone("BRT", -3*60*60)

	// 21:30 UTC is 18:30 local.
	assert.True(t, p.IsShopOpen(at(2026, 3, 3, 21, 30)))
	// 22:00 UTC is 19:00 local.
	assert.False(t, p.IsShopOpen(at(2026, 3, 3, 22, 0)))
}

func TestAdmitsWindow(t *testing.T) {
	p := testPolicy()
	late := appointment.Interval{Start: at(2026, 3, 3, 18, 45), End: at(2026, 3, 3, 19, 45)}

	assert.True(t, p.AdmitsWindow(late), "only the start hour is checked by default")

	p.RequireEndWithinHours = true
	assert.False(t, p.AdmitsWindow(late))
	assert.True(t, p.AdmitsWindow(appointment.Interval{Start: at(2026, 3, 3, 18, 0), End: at(2026, 3, 3, 19, 0)}))
}

func TestIsOverCapacity(t *testing.T) {
	p := testPolicy()

	assert.True(t, p.IsOverCapacity(10, 7))
	assert.False(t, p.IsOverCapacity(10, 6))
	assert.True(t, p.IsOverCapacity(1, 1))
	assert.False(t, p.IsOverCapacity(0, 5), "no active barbers never throttles")

	p.CapacityThresholdPercent = 100
	assert.False(t, p.IsOverCapacity(10, 9))
	assert.True(t, p.IsOverCapacity(10, 10))
}

func TestCountOverlapping(t *testing.T) {
	p := testPolicy()
	iv := appointment.Interval{Start: at(2026, 3, 3, 10, 0), End: at(2026, 3, 3, 10, 30)}

	aps := []models.Appointment{
		{BarberID: 1, Kind: "booking", StartTime: at(2026, 3, 3, 10, 0), EndTime: at(2026, 3, 3, 10, 30)},
		{BarberID: 2, Kind: "booking", StartTime: at(2026, 3, 3, 9, 30), EndTime: at(2026, 3, 3, 10, 0)},
		*p.NewAbsence(3, at(2026, 3, 3, 0, 0), 1, "vacation"),
	}

	assert.Equal(t, 1, p.CountOverlapping(aps, iv))

	p.CapacityCountsAbsences = true
	assert.Equal(t, 2, p.CountOverlapping(aps, iv))
}

func TestValidate(t *testing.T) {
	p := testPolicy()
	ok := appointment.BookingRequest{BarberID: 1, ServiceID: 1, ClientName: "Ana", Start: at(2026, 3, 3, 10, 0)}

	require.NoError(t, p.Validate(ok))

	reserved := ok
	reserved.ClientName = "__ABSENCE__:sick#1"
	err := p.Validate(reserved)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	blank := ok
	blank.ClientName = "   "
	assert.True(t, httperr.IsBusiness(p.Validate(blank), httperr.CodeValidation))

	noStart := ok
	noStart.Start = time.Time{}
	assert.True(t, httperr.IsBusiness(p.Validate(noStart), httperr.CodeValidation))

	longest := ok
	longest.ClientName = strings.Repeat("ñ", appointment.MaxClientNameLength)
	longest.ClientContact = strings.Repeat("a", appointment.MaxClientContactLength-12) + "@example.com"
	assert.NoError(t, p.Validate(longest), "limits count characters, not bytes")

	longName := ok
	longName.ClientName = strings.Repeat("x", appointment.MaxClientNameLength+1)
	assert.True(t, httperr.IsBusiness(p.Validate(longName), httperr.CodeValidation))

	longContact := ok
	longContact.ClientContact = strings.Repeat("a", appointment.MaxClientContactLength) + "@example.com"
	assert.True(t, httperr.IsBusiness(p.Validate(longContact), httperr.CodeValidation))
}
