package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return wrap(r.db.WithContext(ctx).Create(l).Error, "create audit log")
}

func (r *AuditGormRepository) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	db := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&logs).Error; err != nil {
		return nil, wrap(err, "list audit logs")
	}
	return logs, nil
}

var _ audit.Store = (*AuditGormRepository)(nil)
