package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, wrap(err, "get service")
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, wrap(err, "get barber")
	}
	return &b, nil
}

func (r *AppointmentGormRepository) CountActiveBarbers(
	ctx context.Context,
) (int, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("active = ?", true).
		Count(&n).Error; err != nil {
		return 0, wrap(err, "count active barbers")
	}
	return int(n), nil
}

// --------------------------------------------------
// Serialization
// --------------------------------------------------

func (r *AppointmentGormRepository) WithBarberLock(
	ctx context.Context,
	barberID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&b, barberID).Error; err != nil {
			return wrap(err, "lock barber")
		}

		return fn(&AppointmentGormRepository{db: tx})
	})
}

func (r *AppointmentGormRepository) ShareLockService(
	ctx context.Context,
	serviceID uint,
) error {

	var s models.Service
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		First(&s, serviceID).Error
	return wrap(err, "lock service")
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	q domain.OverlapQuery,
) ([]models.Appointment, error) {

	db := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", q.Window.End, q.Window.Start)

	if q.BarberID != nil {
		db = db.Where("barber_id = ?", *q.BarberID)
	}
	if !q.IncludeAbsences {
		db = db.Where("kind = ?", string(domain.KindBooking))
	}

	var apps []models.Appointment
	if err := db.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, wrap(err, "list overlapping appointments")
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, wrap(err, "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Appointment, error) {

	db := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service")

	if q.BarberID != nil {
		db = db.Where("barber_id = ?", *q.BarberID)
	}
	if q.From != nil {
		db = db.Where("start_time >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("start_time < ?", *q.To)
	}
	if !q.IncludeAbsences {
		db = db.Where("kind = ?", string(domain.KindBooking))
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var apps []models.Appointment
	if err := db.Order("start_time DESC, id DESC").Find(&apps).Error; err != nil {
		return nil, wrap(err, "list appointments")
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return wrap(r.db.WithContext(ctx).Create(ap).Error, "create appointment")
}

func (r *AppointmentGormRepository) CreateAppointments(
	ctx context.Context,
	aps []*models.Appointment,
) error {

	if len(aps) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(aps).Error
	})
	return wrap(err, "create appointments")
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return wrap(res.Error, "delete appointment")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
