package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AvailabilityStatus string

const (
	AvailabilityOpen            AvailabilityStatus = "open"
	AvailabilityRecurringDayOff AvailabilityStatus = "day_off"
	AvailabilityAbsent          AvailabilityStatus = "absent"
)

type Availability struct {
	Status AvailabilityStatus `json:"status"`
	Reason string             `json:"reason,omitempty"`
}

func (a Availability) IsOpen() bool {
	return a.Status == AvailabilityOpen
}

// Err converts a non-open verdict into its business rejection.
func (a Availability) Err() error {
	switch a.Status {
	case AvailabilityRecurringDayOff:
		return ErrBarberDayOff
	case AvailabilityAbsent:
		return ErrBarberAbsent(a.Reason)
	}
	return nil
}

// ResolveAvailability decides whether barber works on date's local day.
// Time of day is ignored. The recurring day off wins over an absence.
func (p Policy) ResolveAvailability(barber *models.Barber, date time.Time, absences []models.Appointment) Availability {
	day := p.Local(date)

	if wd, ok := barber.RecurringDayOff(); ok && wd == day.Weekday() {
		return Availability{Status: AvailabilityRecurringDayOff}
	}

	for i := range absences {
		ap := &absences[i]
		if !IsAbsence(ap) || ap.BarberID != barber.ID {
			continue
		}
		if SameDate(p.Local(ap.StartTime), day) {
			return Availability{Status: AvailabilityAbsent, Reason: p.AbsenceReasonOf(ap)}
		}
	}

	return Availability{Status: AvailabilityOpen}
}
