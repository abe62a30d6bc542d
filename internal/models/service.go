package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMin int             `gorm:"not null" json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
