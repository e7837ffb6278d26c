package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/tradeworks/backend/internal/application/billing"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService  *billingapp.InvoiceService
	documentHandler *DocumentHandler
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, documentHandler *DocumentHandler) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		documentHandler: documentHandler,
	}
}

// InvoiceRoutes creates the route group for invoice endpoints
func InvoiceRoutes(h *InvoiceHandler) *router.DomainGroup {
	group := router.NewDomainGroup("invoices", "/invoices")

	group.POST("", h.Create)
	group.GET("", h.List)
	group.POST("/from-quotation", h.CreateFromQuotation)
	group.POST("/sweep-overdue", h.SweepOverdue)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/payments", h.RecordPayment)
	group.GET("/:id/receipts", h.ListReceipts)
	group.POST("/:id/photos", h.AddPhoto)
	group.GET("/:id/pdf", h.documentHandler.DownloadInvoicePDF)
	group.POST("/:id/pdf", h.documentHandler.UploadInvoicePDF)
	group.DELETE("/:id", h.Delete)

	return group
}

// Create creates a standalone invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// CreateFromQuotation converts an accepted quotation into an invoice
func (h *InvoiceHandler) CreateFromQuotation(c *gin.Context) {
	var req billingapp.CreateInvoiceFromQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateFromQuotation(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID retrieves an invoice by ID
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List retrieves a paginated list of invoices
func (h *InvoiceHandler) List(c *gin.Context) {
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

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// RecordPayment records a payment against an invoice and issues a
// receipt
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.invoiceService.RecordPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, receipt)
}

// ListReceipts retrieves payment receipts for an invoice
func (h *InvoiceHandler) ListReceipts(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	receipts, err := h.invoiceService.ListReceipts(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipts)
}

// AddPhoto attaches a work photo to an invoice
func (h *InvoiceHandler) AddPhoto(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.AddPhoto(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SweepOverdue marks unpaid invoices past their due date as overdue
func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	marked, err := h.invoiceService.SweepOverdue(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"overdue": marked})
}

// Delete deletes an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
