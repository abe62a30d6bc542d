package dto

import domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"

type AvailabilityDTO struct {
	BarberID  uint   `json:"barber_id"`
	ServiceID uint   `json:"service_id"`
	Date      string `json:"date"`

	Status domain.AvailabilityStatus `json:"status"`
	Reason string                    `json:"reason,omitempty"`

	Slots []domain.TimeSlot `json:"slots"`
}
