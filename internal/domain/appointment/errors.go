package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ErrOverlapViolation is returned by stores when the storage-level no-overlap
// guard rejects a booking that passed the read-side checks.
var ErrOverlapViolation = errors.New("appointment overlaps an existing booking")

var (
	ErrServiceNotFound      = httperr.ErrBusiness(httperr.CodeServiceNotFound)
	ErrBarberNotFound       = httperr.ErrBusiness(httperr.CodeBarberNotFound)
	ErrAppointmentNotFound  = httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	ErrOutsideBusinessHours = httperr.ErrBusiness(httperr.CodeOutsideBusinessHours)
	ErrBarberDayOff         = httperr.ErrBusiness(httperr.CodeBarberDayOff)
	ErrTimeConflict         = httperr.ErrBusiness(httperr.CodeTimeConflict)
	ErrCapacityExceeded     = httperr.ErrBusiness(httperr.CodeCapacityExceeded)
)

func ErrBarberAbsent(reason string) error {
	return httperr.ErrBusinessDetail(httperr.CodeBarberAbsent, reason)
}

func ErrValidation(detail string) error {
	return httperr.ErrBusinessDetail(httperr.CodeValidation, detail)
}
