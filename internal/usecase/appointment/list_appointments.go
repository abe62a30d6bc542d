package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

const defaultListLimit = 500

type ListAppointmentsInput struct {
	BarberID *uint

	// Date (YYYY-MM-DD) or Month (YYYY-MM) in shop time; Date wins.
	Date  string
	Month string

	IncludeAbsences bool
	Limit           int
}

// ListAppointments returns the ledger newest first.
type ListAppointments struct {
	repo   domain.Repository
	policy domain.Policy
}

func NewListAppointments(
	repo domain.Repository,
	policy domain.Policy,
) *ListAppointments {
	return &ListAppointments{
		repo:   repo,
		policy: policy,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	q := domain.ListQuery{
		BarberID:        in.BarberID,
		IncludeAbsences: in.IncludeAbsences,
		Limit:           in.Limit,
	}
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}

	switch {
	case in.Date != "":
		day, err := uc.policy.ParseDate(in.Date)
		if err != nil {
			return nil, domain.ErrValidation("date debe tener el formato YYYY-MM-DD")
		}
		w := uc.policy.DayWindow(day)
		q.From, q.To = &w.Start, &w.End

	case in.Month != "":
		first, err := time.ParseInLocation("2006-01", in.Month, uc.policy.Loc())
		if err != nil {
			return nil, domain.ErrValidation("month debe tener el formato YYYY-MM")
		}
		end := first.AddDate(0, 1, 0)
		q.From, q.To = &first, &end
	}

	appointments, err := uc.repo.ListAppointments(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:            ap.ID,
			Kind:          ap.Kind,
			BarberID:      ap.BarberID,
			ServiceID:     ap.ServiceID,
			ClientName:    ap.ClientName,
			ClientContact: ap.ClientContact,
			StartTime:     ap.StartTime.In(uc.policy.Loc()),
			EndTime:       ap.EndTime.In(uc.policy.Loc()),
			AbsenceDay:    ap.AbsenceDay,
		}
		if ap.Barber != nil {
			item.BarberName = ap.Barber.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		if domain.IsAbsence(&ap) {
			item.AbsenceReason = uc.policy.AbsenceReasonOf(&ap)
		}
		out = append(out, item)
	}

	return out, nil
}
