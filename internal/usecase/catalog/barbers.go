package catalog

import (
	"context"
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ErrPhotosDisabled is returned when no object storage is configured.
var ErrPhotosDisabled = errors.New("photo storage not configured")

// PhotoUploader stores a portrait and returns its public URL.
type PhotoUploader interface {
	UploadBarberPhoto(ctx context.Context, barberID uint, r io.Reader) (string, error)
}

var errBarberNotFound = httperr.ErrBusiness(httperr.CodeBarberNotFound)

func mapNotFound(err, to error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return to
	}
	return err
}

// ======================================================
// BARBERS
// ======================================================

type Barbers struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	photos PhotoUploader
}

func NewBarbers(
	repo domain.Repository,
	audit *audit.Dispatcher,
	photos PhotoUploader,
) *Barbers {
	return &Barbers{
		repo:   repo,
		audit:  audit,
		photos: photos,
	}
}

func (uc *Barbers) List(ctx context.Context, includeInactive bool) ([]models.Barber, error) {
	return uc.repo.ListBarbers(ctx, includeInactive)
}

type CreateBarberInput struct {
	Name   string
	DayOff *int
}

func (uc *Barbers) Create(ctx context.Context, in CreateBarberInput) (*models.Barber, error) {
	if err := domain.ValidateName(in.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateDayOff(in.DayOff); err != nil {
		return nil, err
	}

	b := &models.Barber{
		Name:   strings.TrimSpace(in.Name),
		DayOff: in.DayOff,
		Active: true,
	}
	if err := uc.repo.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &b.ID,
		Metadata: map[string]any{"name": b.Name, "day_off": b.DayOff},
	})
	return b, nil
}

// UpdateBarberInput applies only the fields that are set. ClearDayOff
// removes the weekly day off.
type UpdateBarberInput struct {
	ID          uint
	Name        *string
	DayOff      *int
	ClearDayOff bool
	Active      *bool
}

func (uc *Barbers) Update(ctx context.Context, in UpdateBarberInput) (*models.Barber, error) {
	b, err := uc.repo.GetBarber(ctx, in.ID)
	if err != nil {
		return nil, mapNotFound(err, errBarberNotFound)
	}

	if in.Name != nil {
		if err := domain.ValidateName(*in.Name); err != nil {
			return nil, err
		}
		b.Name = strings.TrimSpace(*in.Name)
	}
	switch {
	case in.ClearDayOff:
		b.DayOff = nil
	case in.DayOff != nil:
		if err := domain.ValidateDayOff(in.DayOff); err != nil {
			return nil, err
		}
		b.DayOff = in.DayOff
	}
	if in.Active != nil {
		b.Active = *in.Active
	}

	if err := uc.repo.UpdateBarber(ctx, b); err != nil {
		return nil, mapNotFound(err, errBarberNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &b.ID,
		Metadata: map[string]any{"name": b.Name, "day_off": b.DayOff, "active": b.Active},
	})
	return b, nil
}

// Delete removes the barber together with its appointments and returns how
// many appointments went with it.
func (uc *Barbers) Delete(ctx context.Context, id uint) (int64, error) {
	removed, err := uc.repo.DeleteBarberCascade(ctx, id)
	if err != nil {
		return 0, mapNotFound(err, errBarberNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: &id,
		Metadata: map[string]any{"appointments_removed": removed},
	})
	return removed, nil
}

func (uc *Barbers) UploadPhoto(ctx context.Context, id uint, r io.Reader) (*models.Barber, error) {
	if uc.photos == nil {
		return nil, ErrPhotosDisabled
	}

	b, err := uc.repo.GetBarber(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, errBarberNotFound)
	}

	url, err := uc.photos.UploadBarberPhoto(ctx, b.ID, r)
	if err != nil {
		return nil, err
	}

	b.PhotoURL = url
	if err := uc.repo.UpdateBarber(ctx, b); err != nil {
		return nil, mapNotFound(err, errBarberNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "barber_photo_updated",
		Entity:   "barber",
		EntityID: &b.ID,
	})
	return b, nil
}
