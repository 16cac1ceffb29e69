package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/httpresp"
	"github.com/BarberiaDigital/barberia-api/internal/middleware"
	usecase "github.com/BarberiaDigital/barberia-api/internal/usecase/sale"
)

type SaleHandler struct {
	open       *usecase.OpenSale
	detail     *usecase.GetSaleDetail
	addService *usecase.AddServiceLine
	addProduct *usecase.AddProductLine
	removeLine *usecase.RemoveLine
	payment    *usecase.RegisterPayment
	void       *usecase.VoidSale
	delete     *usecase.DeleteSale
}

func NewSaleHandler(
	open *usecase.OpenSale,
	detail *usecase.GetSaleDetail,
	addService *usecase.AddServiceLine,
	addProduct *usecase.AddProductLine,
	removeLine *usecase.RemoveLine,
	payment *usecase.RegisterPayment,
	void *usecase.VoidSale,
	del *usecase.DeleteSale,
) *SaleHandler {
	return &SaleHandler{
		open:       open,
		detail:     detail,
		addService: addService,
		addProduct: addProduct,
		removeLine: removeLine,
		payment:    payment,
		void:       void,
		delete:     del,
	}
}

// --------- Requests ---------

type OpenSaleRequest struct {
	ClientID *uint `json:"client_id"`
}

type AddServiceLineRequest struct {
	ServiceID     uint    `json:"service_id" binding:"required"`
	BarberID      uint    `json:"barber_id" binding:"required"`
	DurationMin   int     `json:"duration_min"`
	UnitPrice     float64 `json:"unit_price" binding:"required"`
	CommissionPct float64 `json:"commission_pct"`
}

type AddProductLineRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

type RegisterPaymentRequest struct {
	Method    string  `json:"method" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Reference string  `json:"reference"`
}

// --------- Handlers ---------

func (h *SaleHandler) Open(c *gin.Context) {
	var req OpenSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	s, err := h.open.Execute(c.Request.Context(), req.ClientID, c.GetUint(middleware.ContextUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *SaleHandler) Detail(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	s, summary, err := h.detail.Execute(c.Request.Context(), saleID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sale":    s,
		"summary": summary,
	})
}

func (h *SaleHandler) AddServiceLine(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	var req AddServiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.addService.Execute(c.Request.Context(), usecase.AddServiceLineInput{
		SaleID:        saleID,
		ServiceID:     req.ServiceID,
		BarberID:      req.BarberID,
		DurationMin:   req.DurationMin,
		UnitPrice:     req.UnitPrice,
		CommissionPct: req.CommissionPct,
		ActorID:       c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, summary)
}

func (h *SaleHandler) AddProductLine(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	var req AddProductLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.addProduct.Execute(c.Request.Context(), usecase.AddProductLineInput{
		SaleID:    saleID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		ActorID:   c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, summary)
}

// RemoveLine responde DELETE /sales/:id/lines/:lineId?kind=servicio|producto.
func (h *SaleHandler) RemoveLine(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	lineID, err := strconv.ParseUint(c.Param("lineId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID de línea inválido.")
		return
	}

	summary, err := h.removeLine.Execute(c.Request.Context(), usecase.RemoveLineInput{
		SaleID:  saleID,
		LineID:  uint(lineID),
		Kind:    c.Query("kind"),
		ActorID: c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *SaleHandler) RegisterPayment(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.payment.Execute(c.Request.Context(), usecase.RegisterPaymentInput{
		SaleID:    saleID,
		Method:    req.Method,
		Amount:    req.Amount,
		Reference: req.Reference,
		ActorID:   c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, summary)
}

// Void anula la venta: desactiva líneas y pagos y devuelve el stock de
// las líneas de producto activas, todo en una transacción.
func (h *SaleHandler) Void(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	summary, err := h.void.Execute(c.Request.Context(), saleID, c.GetUint(middleware.ContextUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, summary)
}

// Delete borra la venta en duro, hijos en cascada. No devuelve stock:
// para revertir inventario el camino es Void. Solo admin.
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := saleIDParam(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), saleID, c.GetUint(middleware.ContextUserID)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func saleIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID de venta inválido.")
		return 0, false
	}
	return uint(id), true
}
