package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/httpresp"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

// ScheduleHandler administra el horario semanal, los bloqueos y las
// capacidades de servicio de un barbero.
type ScheduleHandler struct {
	db        *gorm.DB
	cache     *cache.AvailabilityCache
	lookahead int
}

func NewScheduleHandler(db *gorm.DB, c *cache.AvailabilityCache, lookaheadDays int) *ScheduleHandler {
	return &ScheduleHandler{db: db, cache: c, lookahead: lookaheadDays}
}

// invalidateBookingRange invalida la disponibilidad cacheada de toda
// la ventana de reserva; un cambio de jornada o de capacidades afecta
// cualquier fecha.
func (h *ScheduleHandler) invalidateBookingRange(c *gin.Context) {
	for _, day := range bookingRangeDates(h.lookahead) {
		h.cache.InvalidateDate(c.Request.Context(), day)
	}
}

// bookingRangeDates enumera las fechas civiles de la ventana de
// reserva, hoy incluida.
func bookingRangeDates(lookaheadDays int) []time.Time {
	now := timezone.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := make([]time.Time, 0, lookaheadDays+1)
	for i := 0; i <= lookaheadDays; i++ {
		out = append(out, day.AddDate(0, 0, i))
	}
	return out
}

// --------- Requests ---------

type WorkingWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Active    bool   `json:"active"`
}

type WorkingWindowsUpdateRequest struct {
	Windows []WorkingWindowConfig `json:"windows" binding:"required,dive"`
}

type CreateBlockRequest struct {
	Date      string `json:"date" binding:"required,civildate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Reason    string `json:"reason"`
}

type CapabilitiesUpdateRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// --------- Working windows ---------

func (h *ScheduleHandler) GetWindows(c *gin.Context) {
	barberID := c.Param("id")

	var windows []models.WorkingWindow
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_windows"})
		return
	}

	httpresp.List(c, windows)
}

// UpdateWindows reemplaza el set semanal completo. Las ventanas de un
// mismo día no pueden solaparse ni estar invertidas.
func (h *ScheduleHandler) UpdateWindows(c *gin.Context) {
	barberID := c.Param("id")

	var req WorkingWindowsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := validateWindowSet(req.Windows); err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Ventanas inválidas o solapadas.")
		return
	}

	var barber models.User
	if err := h.db.
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.WorkingWindow{}).Error; err != nil {
			return err
		}

		toCreate := make([]models.WorkingWindow, 0, len(req.Windows))
		for _, w := range req.Windows {
			toCreate = append(toCreate, models.WorkingWindow{
				BarberID:  barber.ID,
				Weekday:   w.Weekday,
				StartTime: w.StartTime,
				EndTime:   w.EndTime,
				Active:    w.Active,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_windows"})
		return
	}

	h.invalidateBookingRange(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateWindowSet(windows []WorkingWindowConfig) error {
	byDay := make(map[int][][2]int)

	for _, w := range windows {
		start, err := domain.ParseHHMM(w.StartTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_window")
		}
		end, err := domain.ParseHHMM(w.EndTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_window")
		}
		if end <= start {
			return httperr.ErrBusiness("invalid_window")
		}

		for _, existing := range byDay[w.Weekday] {
			if domain.Overlaps(start, end, existing[0], existing[1]) {
				return httperr.ErrBusiness("overlapping_windows")
			}
		}
		byDay[w.Weekday] = append(byDay[w.Weekday], [2]int{start, end})
	}

	return nil
}

// --------- Blocks ---------

func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	barberID := c.Param("id")

	var blocks []models.BarberBlock
	if err := h.db.
		Where("barber_id = ? AND active = true", barberID).
		Order("date ASC, start_time ASC").
		Find(&blocks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocks"})
		return
	}

	httpresp.List(c, blocks)
}

func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	barberID := c.Param("id")

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, _ := domain.ParseHHMM(req.StartTime)
	end, _ := domain.ParseHHMM(req.EndTime)
	if end <= start {
		httperr.BadRequest(c, "invalid_block", "Rango de bloqueo inválido.")
		return
	}

	var barber models.User
	if err := h.db.
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	block := models.BarberBlock{
		BarberID:  barber.ID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Active:    true,
	}

	if err := h.db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_block"})
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), block.Date)
	httpresp.Created(c, block)
}

func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	barberID := c.Param("id")
	blockID := c.Param("blockId")

	var block models.BarberBlock
	if err := h.db.
		Where("id = ? AND barber_id = ?", blockID, barberID).
		First(&block).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueo no encontrado.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_block"})
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), block.Date)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Capabilities ---------

// UpdateCapabilities reemplaza el set de servicios que el barbero
// puede prestar.
func (h *ScheduleHandler) UpdateCapabilities(c *gin.Context) {
	barberID := c.Param("id")

	var req CapabilitiesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var barber models.User
	if err := h.db.
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.BarberService{}).Error; err != nil {
			return err
		}

		toCreate := make([]models.BarberService, 0, len(req.ServiceIDs))
		for _, sid := range req.ServiceIDs {
			toCreate = append(toCreate, models.BarberService{
				BarberID:  barber.ID,
				ServiceID: sid,
				Active:    true,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_capabilities"})
		return
	}

	h.invalidateBookingRange(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
