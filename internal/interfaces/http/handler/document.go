package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	documentapp "github.com/tradeworks/backend/internal/application/document"
	"github.com/tradeworks/backend/internal/infrastructure/render"
)

// DocumentHandler handles PDF rendering endpoints. Its routes are
// mounted under the quotation and invoice groups.
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// DownloadQuotationPDF streams a freshly rendered quotation PDF
func (h *DocumentHandler) DownloadQuotationPDF(c *gin.Context) {
	h.download(c, h.documentService.DownloadQuotation)
}

// DownloadInvoicePDF streams a freshly rendered invoice PDF
func (h *DocumentHandler) DownloadInvoicePDF(c *gin.Context) {
	h.download(c, h.documentService.DownloadInvoice)
}

// UploadQuotationPDF renders a quotation to object storage and records
// its public URL
func (h *DocumentHandler) UploadQuotationPDF(c *gin.Context) {
	h.upload(c, h.documentService.UploadQuotation)
}

// UploadInvoicePDF renders an invoice to object storage and records
// its public URL
func (h *DocumentHandler) UploadInvoicePDF(c *gin.Context) {
	h.upload(c, h.documentService.UploadInvoice)
}

func (h *DocumentHandler) download(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, strategy documentapp.Strategy) (*render.Download, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	download, err := fn(c.Request.Context(), id, documentapp.Strategy(c.Query("strategy")))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Data(200, download.ContentType, download.Data)
}

func (h *DocumentHandler) upload(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, strategy documentapp.Strategy) (string, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	url, err := fn(c.Request.Context(), id, documentapp.Strategy(c.Query("strategy")))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"pdf_url": url})
}
