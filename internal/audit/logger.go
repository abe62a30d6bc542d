package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Store persists audit rows.
type Store interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	metaJSON := "{}"
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.store.CreateAuditLog(ctx, &models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}
