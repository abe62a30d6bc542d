package dto

import "time"

type AppointmentListDTO struct {
	ID   uint   `json:"id"`
	Kind string `json:"kind"`

	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`

	ServiceID   *uint  `json:"service_id,omitempty"`
	ServiceName string `json:"service_name,omitempty"`

	ClientName    string `json:"client_name"`
	ClientContact string `json:"client_contact,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	AbsenceReason string `json:"absence_reason,omitempty"`
	AbsenceDay    int    `json:"absence_day,omitempty"`
}
