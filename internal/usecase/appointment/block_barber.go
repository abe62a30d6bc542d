package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxReasonLength = 50

type BlockBarberInput struct {
	BarberID  uint
	StartDate string // YYYY-MM-DD, shop time
	Days      int
	Reason    string
}

// BlockBarber is the absence registrar: one sentinel per calendar day,
// written all or nothing.
type BlockBarber struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
	opts   options
}

func NewBlockBarber(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
	opts ...Option,
) *BlockBarber {
	return &BlockBarber{
		repo:   repo,
		policy: policy,
		audit:  audit,
		opts:   buildOptions(opts),
	}
}

func (uc *BlockBarber) Execute(
	ctx context.Context,
	in BlockBarberInput,
) ([]uint, error) {

	if in.BarberID == 0 {
		return nil, domain.ErrValidation("barber_id es obligatorio")
	}

	start, err := uc.policy.ParseDate(in.StartDate)
	if err != nil {
		return nil, domain.ErrValidation("start_date debe tener el formato YYYY-MM-DD")
	}

	maxDays := uc.policy.MaxAbsenceDays
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxAbsenceDays
	}
	if in.Days < 1 || in.Days > maxDays {
		return nil, domain.ErrValidation("days fuera de rango")
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrValidation("reason es obligatorio")
	}
	if len(reason) > maxReasonLength {
		return nil, domain.ErrValidation("reason es demasiado largo")
	}

	var ids []uint
	err = uc.repo.WithBarberLock(ctx, in.BarberID, func(tx domain.Repository) error {
		sentinels := make([]*models.Appointment, 0, in.Days)
		for i := 0; i < in.Days; i++ {
			sentinels = append(sentinels, uc.policy.NewAbsence(in.BarberID, start.AddDate(0, 0, i), i+1, reason))
		}

		if err := tx.CreateAppointments(ctx, sentinels); err != nil {
			return err
		}

		ids = make([]uint, 0, len(sentinels))
		for _, s := range sentinels {
			ids = append(ids, s.ID)
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, domain.ErrBarberNotFound)
	}

	uc.opts.metrics.ObserveAbsenceDays(len(ids))
	uc.audit.Dispatch(audit.Event{
		Action:   "barber_blocked",
		Entity:   "barber",
		EntityID: &in.BarberID,
		Metadata: map[string]any{
			"start_date": in.StartDate,
			"days":       in.Days,
			"reason":     reason,
		},
	})

	return ids, nil
}
