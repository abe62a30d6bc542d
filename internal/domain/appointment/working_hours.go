package appointment

import "time"

// IsShopOpen reports whether the shop accepts a booking starting at t.
// Only the local start hour is considered: a booking that starts inside the
// window may run past closing unless RequireEndWithinHours is set.
func (p Policy) IsShopOpen(t time.Time) bool {
	lt := p.Local(t)
	h := p.Hours[lt.Weekday()]
	if h.Closed() {
		return false
	}
	return lt.Hour() >= h.Open && lt.Hour() < h.Close
}

// BusinessWindow returns the opening interval of date's weekday.
func (p Policy) BusinessWindow(date time.Time) (Interval, bool) {
	day := p.StartOfDay(date)
	h := p.Hours[day.Weekday()]
	if h.Closed() {
		return Interval{}, false
	}
	return Interval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), h.Open, 0, 0, 0, day.Location()),
		End:   time.Date(day.Year(), day.Month(), day.Day(), h.Close, 0, 0, 0, day.Location()),
	}, true
}

// AdmitsWindow applies the calendar rule to a whole booking interval.
func (p Policy) AdmitsWindow(iv Interval) bool {
	if !p.IsShopOpen(iv.Start) {
		return false
	}
	if !p.RequireEndWithinHours {
		return true
	}
	bw, ok := p.BusinessWindow(iv.Start)
	return ok && !iv.End.After(bw.End)
}
