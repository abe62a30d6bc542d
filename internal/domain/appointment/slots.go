package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// TimeSlot is one candidate start on a given day.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// DaySlots lists candidate starts for date every SlotStep and marks each one
// with the verdict the decision engine would return. dayAppointments must
// cover every barber for the whole day so the capacity check matches.
func (p Policy) DaySlots(
	barberID uint,
	date time.Time,
	duration time.Duration,
	activeBarbers int,
	dayAppointments []models.Appointment,
) []TimeSlot {
	bw, ok := p.BusinessWindow(date)
	if !ok || duration <= 0 {
		return nil
	}

	step := p.SlotStep
	if step <= 0 {
		step = 30 * time.Minute
	}

	var slots []TimeSlot
	for start := bw.Start; start.Before(bw.End); start = start.Add(step) {
		iv := Interval{Start: start, End: start.Add(duration)}
		slot := TimeSlot{Start: iv.Start, End: iv.End, Available: true}

		switch {
		case !p.AdmitsWindow(iv):
			slot.Available, slot.Reason = false, "outside_business_hours"
		case HasConflict(dayAppointments, barberID, iv):
			slot.Available, slot.Reason = false, "time_conflict"
		case p.IsOverCapacity(activeBarbers, p.CountOverlapping(dayAppointments, iv)):
			slot.Available, slot.Reason = false, "capacity_exceeded"
		}

		slots = append(slots, slot)
	}
	return slots
}
