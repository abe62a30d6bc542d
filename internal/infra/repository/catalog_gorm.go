package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListBarbers(
	ctx context.Context,
	includeInactive bool,
) ([]models.Barber, error) {

	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := db.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, wrap(err, "list barbers")
	}
	return barbers, nil
}

func (r *CatalogGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, wrap(err, "get barber")
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	return wrap(r.db.WithContext(ctx).Create(b).Error, "create barber")
}

func (r *CatalogGormRepository) UpdateBarber(
	ctx context.Context,
	b *models.Barber,
) error {

	res := r.db.WithContext(ctx).
		Model(b).
		Select("name", "day_off", "active", "photo_url").
		Updates(b)
	if res.Error != nil {
		return wrap(res.Error, "update barber")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CatalogGormRepository) DeleteBarberCascade(
	ctx context.Context,
	id uint,
) (int64, error) {

	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, id).Error; err != nil {
			return err
		}

		res := tx.Where("barber_id = ?", id).Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&b).Error
	})
	if err != nil {
		return 0, wrap(err, "delete barber")
	}
	return removed, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&services).Error; err != nil {
		return nil, wrap(err, "list services")
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, wrap(err, "get service")
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return wrap(r.db.WithContext(ctx).Create(s).Error, "create service")
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {

	res := r.db.WithContext(ctx).
		Model(s).
		Select("name", "price", "duration_min").
		Updates(s)
	if res.Error != nil {
		return wrap(res.Error, "update service")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteServiceCascade takes the service row exclusively, which waits for
// any booking currently holding it in share mode.
func (r *CatalogGormRepository) DeleteServiceCascade(
	ctx context.Context,
	id uint,
) (int64, error) {

	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Service
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, id).Error; err != nil {
			return err
		}

		res := tx.Where("service_id = ?", id).Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&s).Error
	})
	if err != nil {
		return 0, wrap(err, "delete service")
	}
	return removed, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
