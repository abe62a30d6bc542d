package models

import "time"

type Barber struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	// Weekly day off, 0 = Sunday ... 6 = Saturday. Nil means none.
	DayOff *int `json:"day_off"`

	Active   bool   `gorm:"not null;default:true" json:"active"`
	PhotoURL string `gorm:"size:255" json:"photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecurringDayOff returns the configured weekly day off, if any.
func (b *Barber) RecurringDayOff() (time.Weekday, bool) {
	if b.DayOff == nil || *b.DayOff < 0 || *b.DayOff > 6 {
		return 0, false
	}
	return time.Weekday(*b.DayOff), true
}
