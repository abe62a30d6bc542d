package models

import "time"

// AuditLog is one recorded decision or catalog change. Metadata holds a
// JSON object.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_entity" json:"entity_id"`
	Metadata string `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
