package appointment

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrEmptyInterval = errors.New("interval end must be after start")

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewInterval(start time.Time, d time.Duration) (Interval, error) {
	if d <= 0 {
		return Interval{}, ErrEmptyInterval
	}
	return Interval{Start: start, End: start.Add(d)}, nil
}

// Overlaps is strict on both sides, so back-to-back intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartTime, End: ap.EndTime}
}

// FirstConflict returns the first appointment of barberID that overlaps iv.
// Bookings and absence sentinels both count.
func FirstConflict(existing []models.Appointment, barberID uint, iv Interval) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if ap.BarberID != barberID {
			continue
		}
		if IntervalOf(ap).Overlaps(iv) {
			return ap
		}
	}
	return nil
}

func HasConflict(existing []models.Appointment, barberID uint, iv Interval) bool {
	return FirstConflict(existing, barberID, iv) != nil
}
