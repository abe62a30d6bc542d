package appointment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BookingRequest is the raw input of the decision engine.
type BookingRequest struct {
	BarberID      uint
	ServiceID     uint
	ClientName    string
	ClientContact string
	Start         time.Time
}

// Column limits of the appointments table.
const (
	MaxClientNameLength    = 120
	MaxClientContactLength = 254
)

// Validate checks presence and length rules; contact normalization happens
// in the use case.
func (p Policy) Validate(req BookingRequest) error {
	switch {
	case req.BarberID == 0:
		return ErrValidation("barber_id es obligatorio")
	case req.ServiceID == 0:
		return ErrValidation("service_id es obligatorio")
	case strings.TrimSpace(req.ClientName) == "":
		return ErrValidation("client_name es obligatorio")
	case utf8.RuneCountInString(strings.TrimSpace(req.ClientName)) > MaxClientNameLength:
		return ErrValidation("client_name es demasiado largo")
	case utf8.RuneCountInString(strings.TrimSpace(req.ClientContact)) > MaxClientContactLength:
		return ErrValidation("client_contact es demasiado largo")
	case p.IsReservedName(req.ClientName):
		return ErrValidation("client_name usa un prefijo reservado")
	case req.Start.IsZero():
		return ErrValidation("start es obligatorio")
	}
	return nil
}

// NewBooking materializes the ledger row for an admitted request.
func NewBooking(req BookingRequest, service *models.Service, iv Interval) *models.Appointment {
	sid := service.ID
	return &models.Appointment{
		BarberID:      req.BarberID,
		ServiceID:     &sid,
		Kind:          string(KindBooking),
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientContact: strings.TrimSpace(req.ClientContact),
		StartTime:     iv.Start,
		EndTime:       iv.End,
	}
}
