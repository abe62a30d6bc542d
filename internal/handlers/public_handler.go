package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	barbers      *catalog.Barbers
	services     *catalog.Services
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	barbers *catalog.Barbers,
	services *catalog.Services,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		barbers:      barbers,
		services:     services,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.barbers.List(c.Request.Context(), false)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err := uintParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "La fecha es obligatoria.")
		return
	}

	serviceID, err := optionalUintQuery(c, "service_id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	in := appointment.GetAvailabilityInput{
		BarberID: barberID,
		Date:     date,
	}
	if serviceID != nil {
		in.ServiceID = *serviceID
	}

	out, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}
