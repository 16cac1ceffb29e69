package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	usecase "github.com/BarberiaDigital/barberia-api/internal/usecase/appointment"
)

// AvailabilityHandler expone la consulta pública de disponibilidad.
type AvailabilityHandler struct {
	findAvailable *usecase.FindAvailableBarbers
}

func NewAvailabilityHandler(uc *usecase.FindAvailableBarbers) *AvailabilityHandler {
	return &AvailabilityHandler{findAvailable: uc}
}

// GetAvailableBarbers responde GET /availability?date=YYYY-MM-DD&time=HH:MM&service_ids=1,2
func (h *AvailabilityHandler) GetAvailableBarbers(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	idsStr := c.Query("service_ids")

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha inválida, use YYYY-MM-DD.")
		return
	}

	if _, err := domain.ParseHHMM(timeStr); err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Hora inválida, use HH:MM.")
		return
	}

	serviceIDs, err := parseIDList(idsStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "service_ids debe ser una lista de enteros.")
		return
	}

	barbers, err := h.findAvailable.Execute(c.Request.Context(), domain.AvailabilityInput{
		Date:       date,
		StartTime:  timeStr,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    dateStr,
		"time":    timeStr,
		"barbers": barbers,
		"total":   len(barbers),
	})
}

func parseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
