package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// OverlapQuery selects appointments intersecting Window.
// A nil BarberID means every barber.
type OverlapQuery struct {
	BarberID        *uint
	Window          Interval
	IncludeAbsences bool
}

// ListQuery drives the admin listing. Results are newest first.
type ListQuery struct {
	BarberID        *uint
	From            *time.Time
	To              *time.Time
	IncludeAbsences bool
	Limit           int
}

type Repository interface {
	// -------- Catalog lookups --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	CountActiveBarbers(
		ctx context.Context,
	) (int, error)

	// -------- Serialization --------

	// WithBarberLock runs fn with exclusive access to barberID's ledger.
	// The Repository passed to fn is bound to that critical section.
	WithBarberLock(
		ctx context.Context,
		barberID uint,
		fn func(tx Repository) error,
	) error

	// ShareLockService keeps serviceID from being deleted until the
	// surrounding critical section ends.
	ShareLockService(
		ctx context.Context,
		serviceID uint,
	) error

	// -------- Appointment (read) --------
	ListOverlapping(
		ctx context.Context,
		q OverlapQuery,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		q ListQuery,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CreateAppointments inserts all rows or none.
	CreateAppointments(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
