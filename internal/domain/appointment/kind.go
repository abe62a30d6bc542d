package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Appointment Kind
// ===============================

type Kind string

const (
	KindBooking Kind = "booking"
	KindAbsence Kind = "absence"
)

func IsAbsence(ap *models.Appointment) bool {
	return Kind(ap.Kind) == KindAbsence
}

func OnlyBookings(aps []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		if !IsAbsence(&ap) {
			out = append(out, ap)
		}
	}
	return out
}

// ===============================
// Absence sentinels
// ===============================

// IsReservedName reports whether a client name collides with the sentinel
// marker.
func (p Policy) IsReservedName(name string) bool {
	marker := p.AbsenceMarker
	if marker == "" {
		marker = DefaultAbsenceMarker
	}
	return strings.HasPrefix(strings.TrimSpace(name), marker)
}

// AbsenceLabel renders the sentinel's display name, e.g. "__ABSENCE__:vacation#2".
func (p Policy) AbsenceLabel(reason string, day int) string {
	marker := p.AbsenceMarker
	if marker == "" {
		marker = DefaultAbsenceMarker
	}
	return marker + ":" + reason + "#" + strconv.Itoa(day)
}

// ParseAbsenceLabel is the inverse of AbsenceLabel.
func (p Policy) ParseAbsenceLabel(label string) (reason string, day int, ok bool) {
	marker := p.AbsenceMarker
	if marker == "" {
		marker = DefaultAbsenceMarker
	}
	rest, found := strings.CutPrefix(label, marker+":")
	if !found {
		return "", 0, false
	}
	i := strings.LastIndexByte(rest, '#')
	if i < 0 {
		return rest, 0, true
	}
	day, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return rest, 0, true
	}
	return rest[:i], day, true
}

// AbsenceReasonOf prefers the typed column and falls back to the label.
func (p Policy) AbsenceReasonOf(ap *models.Appointment) string {
	if ap.AbsenceReason != "" {
		return ap.AbsenceReason
	}
	reason, _, _ := p.ParseAbsenceLabel(ap.ClientName)
	return reason
}

// SentinelWindow spans the nominal business hours of date's weekday, or the
// whole calendar day when the shop is closed that weekday.
func (p Policy) SentinelWindow(date time.Time) Interval {
	if bw, ok := p.BusinessWindow(date); ok {
		return bw
	}
	return p.DayWindow(date)
}

// NewAbsence builds the sentinel for the day-th day of a block.
func (p Policy) NewAbsence(barberID uint, date time.Time, day int, reason string) *models.Appointment {
	w := p.SentinelWindow(date)
	return &models.Appointment{
		BarberID:      barberID,
		Kind:          string(KindAbsence),
		ClientName:    p.AbsenceLabel(reason, day),
		StartTime:     w.Start,
		EndTime:       w.End,
		AbsenceReason: reason,
		AbsenceDay:    day,
	}
}
