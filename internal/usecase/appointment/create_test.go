package appointment_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	uc "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func utcPolicy() domain.Policy {
	p := domain.DefaultPolicy()
	p.Location = time.UTC
	return p
}

// 2026-03-02 is a Monday.
func at(day, h, m int) time.Time {
	return time.Date(2026, 3, day, h, m, 0, 0, time.UTC)
}

type CreateAppointmentSuite struct {
	suite.Suite
	ctx     context.Context
	store   *repository.MemoryStore
	policy  domain.Policy
	create  *uc.CreateAppointment
	block   *uc.BlockBarber
	barber  models.Barber
	service models.Service
}

func TestCreateAppointmentSuite(t *testing.T) {
	suite.Run(t, new(CreateAppointmentSuite))
}

func (s *CreateAppointmentSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = repository.NewMemoryStore()
	s.policy = utcPolicy()

	services, err := cache.NewServiceCache(16, nil)
	s.Require().NoError(err)

	s.create = uc.NewCreateAppointment(s.store, s.policy, nil,
		uc.WithServiceCache(services),
		uc.WithMetrics(metrics.New("test")),
	)
	s.block = uc.NewBlockBarber(s.store, s.policy, nil)

	s.barber = s.addBarber("Carlos The Blade", nil)
	s.service = models.Service{Name: "Corte Caballero", Price: decimal.NewFromInt(30), DurationMin: 30}
	s.Require().NoError(s.store.CreateService(s.ctx, &s.service))
}

func (s *CreateAppointmentSuite) addBarber(name string, dayOff *int) models.Barber {
	b := models.Barber{Name: name, DayOff: dayOff, Active: true}
	s.Require().NoError(s.store.CreateBarber(s.ctx, &b))
	return b
}

func (s *CreateAppointmentSuite) input(barberID uint, start time.Time) uc.CreateAppointmentInput {
	return uc.CreateAppointmentInput{
		BarberID:      barberID,
		ServiceID:     s.service.ID,
		ClientName:    "Ana",
		ClientContact: "+55 11 98765-4321",
		Start:         start,
	}
}

func (s *CreateAppointmentSuite) requireCode(err error, code string) {
	s.T().Helper()
	s.Require().Error(err)
	be, ok := httperr.AsBusiness(err)
	s.Require().True(ok, "expected business error, got %v", err)
	s.Equal(code, be.Code)
}

func (s *CreateAppointmentSuite) TestCreatesBooking() {
	ap, err := s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 0)))
	s.Require().NoError(err)

	s.NotZero(ap.ID)
	s.Equal(string(domain.KindBooking), ap.Kind)
	s.Equal(at(3, 10, 30), ap.EndTime)
	s.Equal("+5511987654321", ap.ClientContact)
	s.Require().NotNil(ap.ServiceID)
	s.Equal(s.service.ID, *ap.ServiceID)
}

func (s *CreateAppointmentSuite) TestValidation() {
	in := s.input(s.barber.ID, at(3, 10, 0))
	in.ClientName = "__ABSENCE__:hack#1"
	_, err := s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeValidation)

	in = s.input(s.barber.ID, at(3, 10, 0))
	in.ClientContact = "not a phone"
	_, err = s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeValidation)

	in = s.input(0, at(3, 10, 0))
	_, err = s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeValidation)
}

func (s *CreateAppointmentSuite) TestOversizedClientFieldsAreRejected() {
	in := s.input(s.barber.ID, at(3, 10, 0))
	in.ClientName = strings.Repeat("x", 500)
	_, err := s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeValidation)

	in = s.input(s.barber.ID, at(3, 10, 0))
	in.ClientContact = strings.Repeat("a", 300) + "@example.com"
	_, err = s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeValidation)

	all, err := s.store.ListAppointments(s.ctx, domain.ListQuery{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *CreateAppointmentSuite) TestEmptyContactIsAllowed() {
	in := s.input(s.barber.ID, at(3, 11, 0))
	in.ClientContact = ""
	ap, err := s.create.Execute(s.ctx, in)
	s.Require().NoError(err)
	s.Empty(ap.ClientContact)
}

func (s *CreateAppointmentSuite) TestUnknownServiceAndBarber() {
	in := s.input(s.barber.ID, at(3, 10, 0))
	in.ServiceID = 999
	_, err := s.create.Execute(s.ctx, in)
	s.requireCode(err, httperr.CodeServiceNotFound)

	_, err = s.create.Execute(s.ctx, s.input(999, at(3, 10, 0)))
	s.requireCode(err, httperr.CodeBarberNotFound)
}

func (s *CreateAppointmentSuite) TestInactiveBarberIsNotBookable() {
	s.barber.Active = false
	s.Require().NoError(s.store.UpdateBarber(s.ctx, &s.barber))

	_, err := s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 0)))
	s.requireCode(err, httperr.CodeBarberNotFound)
}

func (s *CreateAppointmentSuite) TestBusinessHoursBoundary() {
	_, err := s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 18, 59)))
	s.NoError(err)

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 19, 0)))
	s.requireCode(err, httperr.CodeOutsideBusinessHours)

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(8, 12, 0)))
	s.requireCode(err, httperr.CodeOutsideBusinessHours)
}

func (s *CreateAppointmentSuite) TestRecurringDayOff() {
	monday := int(time.Monday)
	b := s.addBarber("Mike Fade", &monday)

	_, err := s.create.Execute(s.ctx, s.input(b.ID, at(2, 15, 0)))
	s.requireCode(err, httperr.CodeBarberDayOff)

	_, err = s.create.Execute(s.ctx, s.input(b.ID, at(3, 15, 0)))
	s.NoError(err)
}

func (s *CreateAppointmentSuite) TestAbsenceBlock() {
	ids, err := s.block.Execute(s.ctx, uc.BlockBarberInput{
		BarberID:  s.barber.ID,
		StartDate: "2026-03-02",
		Days:      3,
		Reason:    "vacation",
	})
	s.Require().NoError(err)
	s.Len(ids, 3)

	for _, day := range []int{2, 3, 4} {
		_, err := s.create.Execute(s.ctx, s.input(s.barber.ID, at(day, 10, 0)))
		s.Require().Error(err)
		be, ok := httperr.AsBusiness(err)
		s.Require().True(ok)
		s.Equal(httperr.CodeBarberAbsent, be.Code, "day %d", day)
		s.Equal("vacation", be.Detail)
	}

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(5, 10, 0)))
	s.NoError(err)
}

func (s *CreateAppointmentSuite) TestConflictAndBackToBack() {
	_, err := s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 0)))
	s.Require().NoError(err)

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 15)))
	s.requireCode(err, httperr.CodeTimeConflict)

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 30)))
	s.NoError(err, "back-to-back")

	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 9, 30)))
	s.NoError(err, "back-to-back before")
}

func (s *CreateAppointmentSuite) TestCapacityThreshold() {
	barbers := []models.Barber{s.barber}
	for i := 1; i < 10; i++ {
		barbers = append(barbers, s.addBarber(fmt.Sprintf("Barber %d", i), nil))
	}

	for i := 0; i < 6; i++ {
		_, err := s.create.Execute(s.ctx, s.input(barbers[i].ID, at(3, 14, 0)))
		s.Require().NoError(err)
	}

	// 6 of 10 busy: admitted, making it 7.
	_, err := s.create.Execute(s.ctx, s.input(barbers[6].ID, at(3, 14, 0)))
	s.Require().NoError(err)

	// 7 of 10 busy: 70% reached.
	_, err = s.create.Execute(s.ctx, s.input(barbers[7].ID, at(3, 14, 0)))
	s.requireCode(err, httperr.CodeCapacityExceeded)

	// A different half hour is unaffected.
	_, err = s.create.Execute(s.ctx, s.input(barbers[7].ID, at(3, 14, 30)))
	s.NoError(err)
}

func (s *CreateAppointmentSuite) TestAbsencesDoNotCountTowardsCapacity() {
	other := s.addBarber("Ana Styles", nil)
	_, err := s.block.Execute(s.ctx, uc.BlockBarberInput{BarberID: other.ID, StartDate: "2026-03-03", Days: 1, Reason: "sick"})
	s.Require().NoError(err)

	// 0 of 2 bookings overlap, the sentinel is ignored.
	_, err = s.create.Execute(s.ctx, s.input(s.barber.ID, at(3, 10, 0)))
	s.NoError(err)
}
