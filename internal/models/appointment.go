package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint    `gorm:"index;not null" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	ServiceID *uint    `gorm:"index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	// booking | absence
	Kind string `gorm:"size:20;not null;default:'booking';index" json:"kind"`

	ClientName    string `gorm:"size:120;not null" json:"client_name"`
	ClientContact string `gorm:"size:254" json:"client_contact"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	AbsenceReason string `gorm:"size:50" json:"absence_reason,omitempty"`
	AbsenceDay    int    `json:"absence_day,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
