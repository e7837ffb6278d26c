package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/billing"
)

// =============================================================================
// Line item DTOs
// =============================================================================

// LineItemRequest represents one priced row in a create request
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Category    string          `json:"category" binding:"max=100"`
	Unit        string          `json:"unit" binding:"max=50"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// LineItemResponse represents one priced row in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sort_order"`
}

// =============================================================================
// Quotation DTOs
// =============================================================================

// CreateQuotationRequest represents a request to create a quotation
type CreateQuotationRequest struct {
	CustomerID     uuid.UUID         `json:"customer_id" binding:"required"`
	IssueDate      time.Time         `json:"issue_date"`
	ExpiryDate     time.Time         `json:"expiry_date"`
	Subject        string            `json:"subject" binding:"max=500"`
	Terms          string            `json:"terms"`
	Items          []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	DepositPercent *decimal.Decimal  `json:"deposit_percent"`
}

// AcceptQuotationRequest carries the optional customer signature
type AcceptQuotationRequest struct {
	SignatureData string `json:"signature_data"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID              uuid.UUID          `json:"id"`
	Number          string             `json:"number"`
	CustomerID      uuid.UUID          `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	IssueDate       time.Time          `json:"issue_date"`
	ExpiryDate      time.Time          `json:"expiry_date"`
	Status          string             `json:"status"`
	Subject         string             `json:"subject"`
	Terms           string             `json:"terms"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	RequiresDeposit bool               `json:"requires_deposit"`
	DepositPercent  decimal.Decimal    `json:"deposit_percent"`
	DepositAmount   decimal.Decimal    `json:"deposit_amount"`
	Total           decimal.Decimal    `json:"total"`
	PDFURL          string             `json:"pdf_url"`
	SentAt          *time.Time         `json:"sent_at,omitempty"`
	DecidedAt       *time.Time         `json:"decided_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create an invoice from scratch
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	IssueDate  time.Time         `json:"issue_date"`
	DueDate    time.Time         `json:"due_date"`
	Subject    string            `json:"subject" binding:"max=500"`
	Terms      string            `json:"terms"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate    *decimal.Decimal  `json:"tax_rate"`
}

// CreateInvoiceFromQuotationRequest derives an invoice from a quotation
type CreateInvoiceFromQuotationRequest struct {
	QuotationID    uuid.UUID        `json:"quotation_id" binding:"required"`
	IssueDate      time.Time        `json:"issue_date"`
	DueDate        time.Time        `json:"due_date"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	DepositInvoice bool             `json:"deposit_invoice"`
}

// RecordPaymentRequest represents a payment recorded against an invoice
type RecordPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,payment_method"`
	ReceivedAt time.Time       `json:"received_at"`
	Reference  string          `json:"reference" binding:"max=200"`
}

// AddPhotoRequest attaches a work photo to an invoice
type AddPhotoRequest struct {
	URL     string `json:"url" binding:"required,max=1000"`
	Caption string `json:"caption" binding:"max=200"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID               uuid.UUID          `json:"id"`
	Number           string             `json:"number"`
	QuotationID      *uuid.UUID         `json:"quotation_id,omitempty"`
	QuotationNumber  string             `json:"quotation_number,omitempty"`
	CustomerID       uuid.UUID          `json:"customer_id"`
	CustomerName     string             `json:"customer_name"`
	IssueDate        time.Time          `json:"issue_date"`
	DueDate          time.Time          `json:"due_date"`
	Status           string             `json:"status"`
	Subject          string             `json:"subject"`
	Terms            string             `json:"terms"`
	Items            []LineItemResponse `json:"items"`
	Photos           []PhotoResponse    `json:"photos"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	TaxRate          decimal.Decimal    `json:"tax_rate"`
	TaxAmount        decimal.Decimal    `json:"tax_amount"`
	IsDepositInvoice bool               `json:"is_deposit_invoice"`
	DepositAmount    decimal.Decimal    `json:"deposit_amount"`
	Total            decimal.Decimal    `json:"total"`
	PaidAmount       decimal.Decimal    `json:"paid_amount"`
	Outstanding      decimal.Decimal    `json:"outstanding"`
	PDFURL           string             `json:"pdf_url"`
	PaidAt           *time.Time         `json:"paid_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// PhotoResponse represents a work photo in API responses
type PhotoResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	SortOrder int       `json:"sort_order"`
}

// ReceiptResponse represents a payment receipt in API responses
type ReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	ReceivedAt    time.Time       `json:"received_at"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DocumentListFilter represents filter options for quotation and invoice lists
type DocumentListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// =============================================================================
// Mappers
// =============================================================================

// ToQuotationResponse converts a domain quotation to a response DTO
func ToQuotationResponse(q *billing.Quotation) QuotationResponse {
	items := make([]LineItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Category:    item.Category,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			SortOrder:   item.SortOrder,
		}
	}

	return QuotationResponse{
		ID:              q.ID,
		Number:          q.Number,
		CustomerID:      q.CustomerID,
		CustomerName:    q.CustomerName,
		IssueDate:       q.IssueDate,
		ExpiryDate:      q.ExpiryDate,
		Status:          q.Status.String(),
		Subject:         q.Subject,
		Terms:           q.Terms,
		Items:           items,
		Subtotal:        q.Subtotal,
		RequiresDeposit: q.RequiresDeposit,
		DepositPercent:  q.DepositPercent,
		DepositAmount:   q.DepositAmount,
		Total:           q.Total,
		PDFURL:          q.PDFURL,
		SentAt:          q.SentAt,
		DecidedAt:       q.DecidedAt,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Category:    item.Category,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			SortOrder:   item.SortOrder,
		}
	}

	photos := make([]PhotoResponse, len(inv.Photos))
	for i, photo := range inv.Photos {
		photos[i] = PhotoResponse{
			ID:        photo.ID,
			URL:       photo.URL,
			Caption:   photo.Caption,
			SortOrder: photo.SortOrder,
		}
	}

	return InvoiceResponse{
		ID:               inv.ID,
		Number:           inv.Number,
		QuotationID:      inv.QuotationID,
		QuotationNumber:  inv.QuotationNumber,
		CustomerID:       inv.CustomerID,
		CustomerName:     inv.CustomerName,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status.String(),
		Subject:          inv.Subject,
		Terms:            inv.Terms,
		Items:            items,
		Photos:           photos,
		Subtotal:         inv.Subtotal,
		TaxRate:          inv.TaxRate,
		TaxAmount:        inv.TaxAmount,
		IsDepositInvoice: inv.IsDepositInvoice,
		DepositAmount:    inv.DepositAmount,
		Total:            inv.Total,
		PaidAmount:       inv.PaidAmount,
		Outstanding:      inv.Outstanding(),
		PDFURL:           inv.PDFURL,
		PaidAt:           inv.PaidAt,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// ToReceiptResponse converts a domain receipt to a response DTO
func ToReceiptResponse(r *billing.PaymentReceipt) ReceiptResponse {
	return ReceiptResponse{
		ID:            r.ID,
		Number:        r.Number,
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		CustomerID:    r.CustomerID,
		Amount:        r.Amount,
		Method:        string(r.Method),
		ReceivedAt:    r.ReceivedAt,
		Reference:     r.Reference,
		CreatedAt:     r.CreatedAt,
	}
}
