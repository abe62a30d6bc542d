package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint

	ClientName    string
	ClientContact string

	Start time.Time
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment is the booking decision engine. Checks run from cheap
// to expensive: input, service, calendar, then the barber-specific checks
// and the store-wide capacity scan under the barber's lock.
type CreateAppointment struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
	opts   options
}

func NewCreateAppointment(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
	opts ...Option,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		policy: policy,
		audit:  audit,
		opts:   buildOptions(opts),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.decide(ctx, in)
	if err != nil {
		uc.reject(in, err)
		return nil, err
	}

	uc.opts.metrics.ObserveDecision(metrics.OutcomeCreated)
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":  ap.BarberID,
			"service_id": in.ServiceID,
			"start":      ap.StartTime,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) reject(in CreateAppointmentInput, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		uc.opts.metrics.ObserveDecision(httperr.CodePersistence)
		uc.opts.logger.Error("appointment decision failed",
			"barber_id", in.BarberID,
			"service_id", in.ServiceID,
			"error", err,
		)
		return
	}

	uc.opts.metrics.ObserveDecision(be.Code)
	uc.audit.Dispatch(audit.Event{
		Action: "appointment_rejected",
		Entity: "appointment",
		Metadata: map[string]any{
			"code":       be.Code,
			"detail":     be.Detail,
			"barber_id":  in.BarberID,
			"service_id": in.ServiceID,
			"start":      in.Start,
		},
	})
}

func (uc *CreateAppointment) decide(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 0. Input
	// --------------------------------------------------
	req := domain.BookingRequest{
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		ClientName:    in.ClientName,
		ClientContact: in.ClientContact,
		Start:         in.Start,
	}
	if err := uc.policy.Validate(req); err != nil {
		return nil, err
	}

	contact, err := validators.NormalizeContact(in.ClientContact, uc.opts.contactRegion)
	if err != nil {
		return nil, domain.ErrValidation("client_contact inválido")
	}
	req.ClientContact = contact

	// --------------------------------------------------
	// 1. Service
	// --------------------------------------------------
	service, err := lookupService(ctx, uc.repo, uc.opts.services, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Interval
	// --------------------------------------------------
	iv, err := domain.NewInterval(in.Start, service.Duration())
	if err != nil {
		return nil, domain.ErrValidation("el servicio no tiene duración")
	}

	// --------------------------------------------------
	// 3. Calendar
	// --------------------------------------------------
	if !uc.policy.AdmitsWindow(iv) {
		return nil, domain.ErrOutsideBusinessHours
	}

	// --------------------------------------------------
	// 4-7. Barber, conflict, capacity, persist
	// --------------------------------------------------
	ap, err := uc.admit(ctx, req, service, iv)
	if errors.Is(err, domain.ErrOverlapViolation) {
		// Lost a race the storage guard caught. The second pass sees the
		// committed winner and answers with the proper rejection.
		ap, err = uc.admit(ctx, req, service, iv)
		if errors.Is(err, domain.ErrOverlapViolation) {
			return nil, domain.ErrTimeConflict
		}
	}
	return ap, err
}

func (uc *CreateAppointment) admit(
	ctx context.Context,
	req domain.BookingRequest,
	service *models.Service,
	iv domain.Interval,
) (*models.Appointment, error) {

	var created *models.Appointment

	err := uc.repo.WithBarberLock(ctx, req.BarberID, func(tx domain.Repository) error {
		barber, err := tx.GetBarber(ctx, req.BarberID)
		if err != nil {
			return mapNotFound(err, domain.ErrBarberNotFound)
		}
		if !barber.Active {
			return domain.ErrBarberNotFound
		}

		if err := tx.ShareLockService(ctx, service.ID); err != nil {
			return mapNotFound(err, domain.ErrServiceNotFound)
		}

		// Everything of this barber on the booking's day, sentinels included.
		day := uc.policy.DayWindow(iv.Start)
		if iv.End.After(day.End) {
			day.End = iv.End
		}
		own, err := tx.ListOverlapping(ctx, domain.OverlapQuery{
			BarberID:        &barber.ID,
			Window:          day,
			IncludeAbsences: true,
		})
		if err != nil {
			return err
		}

		if v := uc.policy.ResolveAvailability(barber, iv.Start, own); !v.IsOpen() {
			return v.Err()
		}

		if domain.HasConflict(own, barber.ID, iv) {
			return domain.ErrTimeConflict
		}

		active, err := tx.CountActiveBarbers(ctx)
		if err != nil {
			return err
		}
		overlapping, err := tx.ListOverlapping(ctx, domain.OverlapQuery{
			Window:          iv,
			IncludeAbsences: uc.policy.CapacityCountsAbsences,
		})
		if err != nil {
			return err
		}
		if uc.policy.IsOverCapacity(active, uc.policy.CountOverlapping(overlapping, iv)) {
			return domain.ErrCapacityExceeded
		}

		ap := domain.NewBooking(req, service, iv)
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return mapNotFound(err, domain.ErrServiceNotFound)
		}
		created = ap
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, domain.ErrBarberNotFound)
	}

	return created, nil
}
