package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

// Mensajes por código de negocio. Los casos de uso devuelven solo el
// código; el texto vive acá, en el borde HTTP.
var businessMessages = map[string]string{
	httperr.CodeTimeConflict:         "El barbero ya tiene una cita en ese horario.",
	httperr.CodeOutsideWorkingHours:  "El horario está fuera de la jornada del barbero.",
	httperr.CodeBlockedTime:          "El horario está bloqueado para el barbero.",
	httperr.CodeBarberMissingService: "El barbero no presta alguno de los servicios.",
	httperr.CodeInsufficientStock:    "Stock insuficiente para el producto.",
	httperr.CodeSaleVoided:           "La venta está anulada y no admite cambios.",
	httperr.CodeInvalidState:         "Transición de estado no permitida.",
	httperr.CodeInvalidAmount:        "Monto o cantidad inválidos.",
	"appointment_not_found":          "Cita no encontrada.",
	"sale_not_found":                 "Venta no encontrada.",
	"client_not_found":               "Cliente no encontrado.",
	"barber_not_found":               "Barbero no encontrado.",
	"product_not_found":              "Producto no encontrado.",
	"service_not_found":              "Servicio no encontrado.",
	"line_not_found":                 "Línea no encontrada.",
	"empty_services":                 "Debe indicar al menos un servicio.",
	"no_active_services":             "Alguno de los servicios no existe o está inactivo.",
	"invalid_date_or_time":           "Fecha u hora inválidas.",
	"date_out_of_window":             "Fecha fuera del rango permitido de reserva.",
	"client_required":                "Debe indicar un cliente o sus datos de contacto.",
	"invalid_method":                 "Método de pago inválido.",
	"invalid_line_kind":              "Tipo de línea inválido.",
	"invalid_gateway_reference":      "Referencia de pasarela inválida.",
	"gateway_payment_not_found":      "El pago no existe en la pasarela.",
	"gateway_payment_rejected":       "La pasarela no aprobó el pago.",
}

var businessStatus = map[string]int{
	httperr.CodeTimeConflict:      http.StatusConflict,
	httperr.CodeInsufficientStock: http.StatusConflict,
	httperr.CodeSaleVoided:        http.StatusConflict,
	httperr.CodeInvalidState:      http.StatusConflict,
	"appointment_not_found":       http.StatusNotFound,
	"sale_not_found":              http.StatusNotFound,
	"client_not_found":            http.StatusNotFound,
	"barber_not_found":            http.StatusNotFound,
	"product_not_found":           http.StatusNotFound,
	"service_not_found":           http.StatusNotFound,
	"line_not_found":              http.StatusNotFound,
	"gateway_payment_not_found":   http.StatusUnprocessableEntity,
	"gateway_payment_rejected":    http.StatusUnprocessableEntity,
}

// writeError traduce errores de caso de uso a HTTP. Todo lo que no es
// de negocio es un 500 opaco.
func writeError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	status, ok := businessStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg, ok := businessMessages[code]
	if !ok {
		msg = "Operación rechazada."
	}

	httperr.Write(c, status, code, msg)
}
