package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// --------------------------------------------------
// Start time: RFC 3339 instant, or date + clock in shop time
// --------------------------------------------------

func resolveStart(policy domain.Policy, start, date, clock string) (time.Time, error) {
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, domain.ErrValidation("start debe ser RFC 3339")
		}
		return t, nil
	}

	if date == "" || clock == "" {
		return time.Time{}, domain.ErrValidation("start o date + time son obligatorios")
	}
	t, err := policy.ParseDateTime(date, clock)
	if err != nil {
		return time.Time{}, domain.ErrValidation("date/time deben tener el formato YYYY-MM-DD y HH:mm")
	}
	return t, nil
}

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, domain.ErrValidation(name + " inválido")
	}
	return uint(v), nil
}

func optionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, domain.ErrValidation(name + " inválido")
	}
	id := uint(v)
	return &id, nil
}

func boolQuery(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
