package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// AppointmentReader loads a stored appointment for idempotent replays.
type AppointmentReader interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	policy domain.Policy

	create *appointment.CreateAppointment
	list   *appointment.ListAppointments
	remove *appointment.RemoveAppointment
	block  *appointment.BlockBarber

	reader AppointmentReader
	idem   idempotency.Store
	log    *slog.Logger
}

func NewAppointmentHandler(
	policy domain.Policy,
	create *appointment.CreateAppointment,
	list *appointment.ListAppointments,
	remove *appointment.RemoveAppointment,
	block *appointment.BlockBarber,
	reader AppointmentReader,
	idem idempotency.Store,
	log *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		policy: policy,
		create: create,
		list:   list,
		remove: remove,
		block:  block,
		reader: reader,
		idem:   idem,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID      uint   `json:"barber_id"`
	ServiceID     uint   `json:"service_id"`
	ClientName    string `json:"client_name"`
	ClientContact string `json:"client_contact"`

	// Either Start, or Date + Time in shop time.
	Start string `json:"start"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

type BlockBarberRequest struct {
	StartDate string `json:"start_date"`
	Days      int    `json:"days"`
	Reason    string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if key != "" {
		if err := idempotency.ValidateKey(key); err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Idempotency-Key inválido.")
			return
		}

		ap, err := h.reserve(ctx, key)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeIdempotencyInProgress))
			return
		case err != nil:
			h.log.Warn("idempotency store unavailable, booking without key", "error", err)
			key = ""
		case ap != nil:
			c.Header(HeaderReplayed, "true")
			httpresp.OK(c, ap)
			return
		}
	}

	ap, err := h.createWithRetry(ctx, req)
	if err != nil {
		if key != "" {
			if rerr := h.idem.Release(ctx, key); rerr != nil {
				h.log.Warn("failed to release idempotency key", "error", rerr)
			}
		}
		httperr.FromError(c, err)
		return
	}

	if key != "" {
		if err := h.idem.Remember(ctx, key, ap.ID); err != nil {
			h.log.Warn("failed to remember idempotency key",
				"appointment_id", ap.ID,
				"error", err,
			)
		}
	}

	httpresp.Created(c, ap)
}

// createWithRetry runs the decision engine, retrying a persistence failure once.
func (h *AppointmentHandler) createWithRetry(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	start, err := resolveStart(h.policy, req.Start, req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	in := appointment.CreateAppointmentInput{
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		ClientName:    req.ClientName,
		ClientContact: req.ClientContact,
		Start:         start,
	}

	ap, err := h.create.Execute(ctx, in)
	if err != nil && httperr.IsPersistence(err) {
		h.log.Warn("retrying appointment after persistence failure",
			"barber_id", in.BarberID,
			"error", err,
		)
		ap, err = h.create.Execute(ctx, in)
	}
	return ap, err
}

// reserve claims key for this request. A non-nil appointment is the one an
// earlier request with the same key created. When that appointment has since
// been deleted the caller takes over the key.
func (h *AppointmentHandler) reserve(ctx context.Context, key string) (*models.Appointment, error) {
	id, err := h.idem.Reserve(ctx, key)
	if err != nil || id == 0 {
		return nil, err
	}

	ap, err := h.reader.GetAppointment(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.log.Warn("idempotent replay failed", "appointment_id", id, "error", err)
		}
		return nil, nil
	}
	return ap, nil
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	barberID, err := optionalUintQuery(c, "barber_id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	items, err := h.list.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		BarberID:        barberID,
		Date:            strings.TrimSpace(c.Query("date")),
		Month:           strings.TrimSpace(c.Query("month")),
		IncludeAbsences: boolQuery(c, "include_absences"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// DELETE (admin)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// ABSENCES (admin)
// ======================================================

func (h *AppointmentHandler) BlockBarber(c *gin.Context) {
	barberID, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req BlockBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	ids, err := h.block.Execute(c.Request.Context(), appointment.BlockBarberInput{
		BarberID:  barberID,
		StartDate: req.StartDate,
		Days:      req.Days,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"barber_id": barberID,
		"ids":       ids,
	})
}
