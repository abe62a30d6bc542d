package httperr

import "net/http"

// Stable rejection codes shared by the core and the transport.
const (
	CodeValidation           = "invalid_request"
	CodeServiceNotFound      = "service_not_found"
	CodeBarberNotFound       = "barber_not_found"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeOutsideBusinessHours = "outside_business_hours"
	CodeBarberDayOff         = "barber_day_off"
	CodeBarberAbsent         = "barber_absent"
	CodeTimeConflict         = "time_conflict"
	CodeCapacityExceeded     = "capacity_exceeded"

	CodeIdempotencyInProgress = "idempotency_key_in_use"
)

type mapping struct {
	status  int
	message string
}

var codeTable = map[string]mapping{
	CodeValidation:           {http.StatusBadRequest, "Datos inválidos."},
	CodeServiceNotFound:      {http.StatusNotFound, "Servicio no encontrado."},
	CodeBarberNotFound:       {http.StatusNotFound, "Barbero no encontrado."},
	CodeAppointmentNotFound:  {http.StatusNotFound, "Cita no encontrada."},
	CodeOutsideBusinessHours: {http.StatusBadRequest, "Fuera del horario de atención."},
	CodeBarberDayOff:         {http.StatusBadRequest, "El barbero descansa ese día."},
	CodeBarberAbsent:         {http.StatusBadRequest, "El barbero no está disponible ese día."},
	CodeTimeConflict:         {http.StatusConflict, "Ese horario ya está ocupado."},
	CodeCapacityExceeded:     {http.StatusConflict, "La barbería está llena a esa hora, elige otro horario."},

	CodeIdempotencyInProgress: {http.StatusConflict, "Otra solicitud con la misma Idempotency-Key está en curso."},
}

func lookup(code string) mapping {
	if m, ok := codeTable[code]; ok {
		return m
	}
	return mapping{http.StatusBadRequest, "Solicitud rechazada."}
}

// StatusFor returns the HTTP status used for a business code.
func StatusFor(code string) int {
	return lookup(code).status
}
