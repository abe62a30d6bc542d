package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// RemoveAppointment deletes a booking or a single absence day.
type RemoveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveAppointment {
	return &RemoveAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RemoveAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return mapNotFound(err, domain.ErrAppointmentNotFound)
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return mapNotFound(err, domain.ErrAppointmentNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"kind":      ap.Kind,
			"start":     ap.StartTime,
		},
	})

	return nil
}
