package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogReader interface {
	ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLogReader
}

func NewAuditLogsHandler(logs AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the most recent audit rows, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	logs, err := h.logs.ListAuditLogs(c.Request.Context(), limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, logs)
}
