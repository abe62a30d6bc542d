package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Barbers --------
	ListBarbers(
		ctx context.Context,
		includeInactive bool,
	) ([]models.Barber, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	CreateBarber(
		ctx context.Context,
		b *models.Barber,
	) error

	UpdateBarber(
		ctx context.Context,
		b *models.Barber,
	) error

	// DeleteBarberCascade removes the barber and every appointment
	// referencing it in one atomic step. It returns the appointment count.
	DeleteBarberCascade(
		ctx context.Context,
		id uint,
	) (int64, error)

	// -------- Services --------
	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	CreateService(
		ctx context.Context,
		s *models.Service,
	) error

	UpdateService(
		ctx context.Context,
		s *models.Service,
	) error

	DeleteServiceCascade(
		ctx context.Context,
		id uint,
	) (int64, error)
}
