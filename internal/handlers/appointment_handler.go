package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/httpresp"
	"github.com/BarberiaDigital/barberia-api/internal/middleware"
	usecase "github.com/BarberiaDigital/barberia-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create     *usecase.CreateAppointment
	transition *usecase.TransitionAppointment
	listByDate *usecase.ListAppointmentsByDate
}

func NewAppointmentHandler(
	create *usecase.CreateAppointment,
	transition *usecase.TransitionAppointment,
	listByDate *usecase.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		transition: transition,
		listByDate: listByDate,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID *uint `json:"client_id"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`

	BarberID   uint   `json:"barber_id" binding:"required"`
	Date       string `json:"date" binding:"required,civildate"`
	Time       string `json:"time" binding:"required,hhmm"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

type TransitionRequest struct {
	State string `json:"state" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceIDs:  req.ServiceIDs,
		Notes:       req.Notes,
		ActorID:     c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// Transition responde PATCH /appointments/:id/state. completada
// materializa la venta en la misma transacción.
func (h *AppointmentHandler) Transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID de cita inválido.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.transition.Execute(
		c.Request.Context(),
		uint(id),
		domain.Status(req.State),
		c.GetUint(middleware.ContextUserID),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ListByDate responde GET /appointments?barber_id=N&date=YYYY-MM-DD.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "barber_id inválido.")
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha inválida, use YYYY-MM-DD.")
		return
	}

	appointments, err := h.listByDate.Execute(c.Request.Context(), uint(barberID), date)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         c.Query("date"),
		"appointments": appointments,
		"total":        len(appointments),
	})
}
