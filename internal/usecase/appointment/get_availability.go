package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type GetAvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD, shop time
}

// GetAvailability answers what the decision engine would say for every
// candidate start of a day. It reads without locks, so a slot shown as free
// can still be taken before the client books it.
type GetAvailability struct {
	repo   domain.Repository
	policy domain.Policy
	opts   options
}

func NewGetAvailability(
	repo domain.Repository,
	policy domain.Policy,
	opts ...Option,
) *GetAvailability {
	return &GetAvailability{
		repo:   repo,
		policy: policy,
		opts:   buildOptions(opts),
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*dto.AvailabilityDTO, error) {

	date, err := uc.policy.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrValidation("date debe tener el formato YYYY-MM-DD")
	}

	duration := uc.policy.DefaultServiceDuration
	if in.ServiceID != 0 {
		service, err := lookupService(ctx, uc.repo, uc.opts.services, in.ServiceID)
		if err != nil {
			return nil, err
		}
		duration = service.Duration()
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrBarberNotFound)
	}
	if !barber.Active {
		return nil, domain.ErrBarberNotFound
	}

	out := &dto.AvailabilityDTO{
		BarberID:  barber.ID,
		ServiceID: in.ServiceID,
		Date:      in.Date,
		Slots:     []domain.TimeSlot{},
	}

	// The last slot may run past midnight on long services.
	window := uc.policy.DayWindow(date)
	window.End = window.End.Add(duration)

	dayAppointments, err := uc.repo.ListOverlapping(ctx, domain.OverlapQuery{
		Window:          window,
		IncludeAbsences: true,
	})
	if err != nil {
		return nil, err
	}

	verdict := uc.policy.ResolveAvailability(barber, date, dayAppointments)
	out.Status, out.Reason = verdict.Status, verdict.Reason
	if !verdict.IsOpen() {
		return out, nil
	}

	active, err := uc.repo.CountActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	if slots := uc.policy.DaySlots(barber.ID, date, duration, active, dayAppointments); slots != nil {
		out.Slots = slots
	}
	return out, nil
}
