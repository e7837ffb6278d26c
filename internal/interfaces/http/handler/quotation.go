package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/tradeworks/backend/internal/application/billing"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *billingapp.QuotationService
	documentHandler  *DocumentHandler
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *billingapp.QuotationService, documentHandler *DocumentHandler) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		documentHandler:  documentHandler,
	}
}

// QuotationRoutes creates the route group for quotation endpoints
func QuotationRoutes(h *QuotationHandler) *router.DomainGroup {
	group := router.NewDomainGroup("quotations", "/quotations")

	group.POST("", h.Create)
	group.GET("", h.List)
	group.POST("/expire-stale", h.ExpireStale)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/send", h.Send)
	group.POST("/:id/accept", h.Accept)
	group.POST("/:id/reject", h.Reject)
	group.GET("/:id/pdf", h.documentHandler.DownloadQuotationPDF)
	group.POST("/:id/pdf", h.documentHandler.UploadQuotationPDF)
	group.DELETE("/:id", h.Delete)

	return group
}

// Create drafts a new quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	var req billingapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quotation)
}

// GetByID retrieves a quotation by ID
func (h *QuotationHandler) GetByID(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// List retrieves a paginated list of quotations
func (h *QuotationHandler) List(c *gin.Context) {
	var filter billingapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotations, total, filter.Page, filter.PageSize)
}

// Send marks a draft quotation as sent to the customer
func (h *QuotationHandler) Send(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Send(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Accept records customer acceptance, optionally with a signature
func (h *QuotationHandler) Accept(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req billingapp.AcceptQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Accept(c.Request.Context(), quotationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Reject records customer rejection
func (h *QuotationHandler) Reject(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Reject(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// ExpireStale sweeps sent quotations past their expiry date
func (h *QuotationHandler) ExpireStale(c *gin.Context) {
	expired, err := h.quotationService.ExpireStale(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"expired": expired})
}

// Delete deletes a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), quotationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
