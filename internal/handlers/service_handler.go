package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER (admin)
// ======================================================

type ServiceHandler struct {
	services *catalog.Services
}

func NewServiceHandler(services *catalog.Services) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// Price accepts a JSON number or a decimal string.
type CreateServiceRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	DurationMin *int            `json:"duration_min"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	DurationMin *int             `json:"duration_min"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	s, err := h.services.Create(c.Request.Context(), catalog.CreateServiceInput{
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	s, err := h.services.Update(c.Request.Context(), catalog.UpdateServiceInput{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, s)
}

// Delete removes the service and every appointment that booked it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	removed, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":                   id,
		"appointments_removed": removed,
	})
}
