package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	MaxNameLength = 100
	// MaxDurationMin caps a service at one working day.
	MaxDurationMin = 12 * 60
)

func invalid(detail string) error {
	return httperr.ErrBusinessDetail(httperr.CodeValidation, detail)
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name es obligatorio")
	}
	if len(name) > MaxNameLength {
		return invalid("name es demasiado largo")
	}
	return nil
}

// ValidateDayOff accepts nil (no day off) or a weekday 0..6.
func ValidateDayOff(dayOff *int) error {
	if dayOff == nil {
		return nil
	}
	if *dayOff < 0 || *dayOff > 6 {
		return invalid("day_off debe estar entre 0 (domingo) y 6 (sábado)")
	}
	return nil
}

func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("price no puede ser negativo")
	}
	return nil
}

func ValidateDuration(minutes int) error {
	if minutes <= 0 || minutes > MaxDurationMin {
		return invalid("duration_min debe ser positivo")
	}
	return nil
}
