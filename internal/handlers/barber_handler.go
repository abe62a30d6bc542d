package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/photo"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER (admin)
// ======================================================

type BarberHandler struct {
	barbers *catalog.Barbers
}

func NewBarberHandler(barbers *catalog.Barbers) *BarberHandler {
	return &BarberHandler{barbers: barbers}
}

type CreateBarberRequest struct {
	Name   string `json:"name"`
	DayOff *int   `json:"day_off"`
}

type UpdateBarberRequest struct {
	Name        *string `json:"name"`
	DayOff      *int    `json:"day_off"`
	ClearDayOff bool    `json:"clear_day_off"`
	Active      *bool   `json:"active"`
}

// ======================================================
// LIST / CREATE / UPDATE / DELETE
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.barbers.List(c.Request.Context(), true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	b, err := h.barbers.Create(c.Request.Context(), catalog.CreateBarberInput{
		Name:   req.Name,
		DayOff: req.DayOff,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	b, err := h.barbers.Update(c.Request.Context(), catalog.UpdateBarberInput{
		ID:          id,
		Name:        req.Name,
		DayOff:      req.DayOff,
		ClearDayOff: req.ClearDayOff,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// Delete removes the barber and every appointment attached to it.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	removed, err := h.barbers.Delete(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":                   id,
		"appointments_removed": removed,
	})
}

// ======================================================
// PHOTO
// ======================================================

// UploadPhoto accepts a multipart "photo" field or the raw image as body.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, photo.MaxUploadBytes+(1<<20))

	var body io.Reader = c.Request.Body
	if fh, err := c.FormFile("photo"); err == nil {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "No se pudo leer la imagen.")
			return
		}
		defer f.Close()
		body = f
	}

	b, err := h.barbers.UploadPhoto(c.Request.Context(), id, body)
	switch {
	case err == nil:
		httpresp.OK(c, b)
	case errors.Is(err, catalog.ErrPhotosDisabled):
		httperr.Write(c, http.StatusNotImplemented, "photos_disabled", "La carga de fotos no está habilitada.")
	case errors.Is(err, photo.ErrTooLarge):
		httperr.Write(c, http.StatusRequestEntityTooLarge, "photo_too_large", "La imagen es demasiado grande.")
	case errors.Is(err, photo.ErrUnsupported), errors.Is(err, photo.ErrEmptyPayload):
		httperr.BadRequest(c, "invalid_photo", "Formato de imagen no soportado.")
	default:
		httperr.FromError(c, err)
	}
}
