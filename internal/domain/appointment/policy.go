package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// DayHours is an opening window expressed in whole local hours, [Open, Close).
// A window with Close <= Open means the shop is closed that weekday.
type DayHours struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

func (d DayHours) Closed() bool {
	return d.Close <= d.Open
}

// WeeklyHours is indexed by time.Weekday (0 = Sunday).
type WeeklyHours [7]DayHours

// Policy gathers every scheduling constant the core depends on.
type Policy struct {
	Location *time.Location
	Hours    WeeklyHours

	CapacityThresholdPercent int
	CapacityCountsAbsences   bool

	RequireEndWithinHours bool

	DefaultServiceDuration time.Duration
	SlotStep               time.Duration

	AbsenceMarker  string
	MaxAbsenceDays int
}

const (
	DefaultCapacityThresholdPercent = 70
	DefaultAbsenceMarker            = "__ABSENCE__"
	DefaultMaxAbsenceDays           = 60
)

func DefaultHours() WeeklyHours {
	weekday := DayHours{Open: 9, Close: 19}
	return WeeklyHours{
		time.Sunday:    {},
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  {Open: 9, Close: 17},
	}
}

func DefaultPolicy() Policy {
	return Policy{
		Location:                 timezone.Location(timezone.DefaultTimezone),
		Hours:                    DefaultHours(),
		CapacityThresholdPercent: DefaultCapacityThresholdPercent,
		DefaultServiceDuration:   30 * time.Minute,
		SlotStep:                 30 * time.Minute,
		AbsenceMarker:            DefaultAbsenceMarker,
		MaxAbsenceDays:           DefaultMaxAbsenceDays,
	}
}

func (p Policy) Loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) Local(t time.Time) time.Time {
	return t.In(p.Loc())
}

// StartOfDay returns local midnight of t's local date.
func (p Policy) StartOfDay(t time.Time) time.Time {
	lt := p.Local(t)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

// DayWindow is the whole local calendar day containing t.
func (p Policy) DayWindow(t time.Time) Interval {
	start := p.StartOfDay(t)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

func (p Policy) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, p.Loc())
}

func (p Policy) ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, p.Loc())
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
