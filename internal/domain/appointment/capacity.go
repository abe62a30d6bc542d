package appointment

import "github.com/BruksfildServices01/barber-booking/internal/models"

// IsOverCapacity reports whether occupancy reached the walk-in reservation
// threshold. With no active barbers the throttle never rejects.
func (p Policy) IsOverCapacity(activeBarbers, overlapping int) bool {
	if activeBarbers <= 0 {
		return false
	}
	return overlapping*100 >= p.CapacityThresholdPercent*activeBarbers
}

// CountOverlapping counts appointments of any barber overlapping iv.
func (p Policy) CountOverlapping(aps []models.Appointment, iv Interval) int {
	n := 0
	for i := range aps {
		if IsAbsence(&aps[i]) && !p.CapacityCountsAbsences {
			continue
		}
		if IntervalOf(&aps[i]).Overlaps(iv) {
			n++
		}
	}
	return n
}
