package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the two printable document types
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice"
)

// IsValid checks if the kind is a known DocumentKind
func (k DocumentKind) IsValid() bool {
	return k == KindQuotation || k == KindInvoice
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// Title returns the heading printed at the top of the document
func (k DocumentKind) Title() string {
	switch k {
	case KindQuotation:
		return "QUOTATION"
	case KindInvoice:
		return "INVOICE"
	}
	return ""
}

// Customer is the bill-to block of a rendered document
type Customer struct {
	Name       string `validate:"required"`
	UnitNumber string
	Address    string
	Phone      string
	Email      string
}

// LineItem is one priced row of a rendered document. Amount is
// precomputed by the caller; the renderer never recalculates it.
type LineItem struct {
	Description string `validate:"required"`
	Category    string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Attachment is a work photo or signature image, referenced by URL or
// data URI, ordered by Index.
type Attachment struct {
	URL     string `validate:"required"`
	Index   int
	Caption string
}

// Document is the full render input for one quotation or invoice
type Document struct {
	Kind             DocumentKind `validate:"required"`
	ReferenceNumber  string       `validate:"required"`
	IssueDate        time.Time
	DueDate          time.Time // Expiry date for quotations
	Status           string
	Subject          string
	Terms            string
	Customer         Customer
	Items            []LineItem `validate:"min=1"`
	Subtotal         decimal.Decimal
	TaxRate          decimal.Decimal
	TaxAmount        decimal.Decimal
	RequiresDeposit  bool
	DepositPercent   decimal.Decimal
	DepositAmount    decimal.Decimal
	IsDepositInvoice bool
	SourceQuotation  string // Cross-reference printed on invoices
	Total            decimal.Decimal
	SignatureDataURI string
	Photos           []Attachment
}

// Validate rejects malformed input before any drawing begins
func (d *Document) Validate() error {
	if !d.Kind.IsValid() {
		return NewRenderError(ErrCodeInvalidInput, "unknown document kind: "+string(d.Kind), nil)
	}
	if d.ReferenceNumber == "" {
		return NewRenderError(ErrCodeInvalidInput, "reference number is required", nil)
	}
	if d.Customer.Name == "" {
		return NewRenderError(ErrCodeInvalidInput, "customer name is required", nil)
	}
	if len(d.Items) == 0 {
		return NewRenderError(ErrCodeInvalidInput, "document has no line items", nil)
	}
	for _, item := range d.Items {
		if item.Description == "" {
			return NewRenderError(ErrCodeInvalidInput, "line item description is required", nil)
		}
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() || item.Amount.IsNegative() {
			return NewRenderError(ErrCodeInvalidInput, "line item amounts cannot be negative", nil)
		}
	}
	if d.Total.IsNegative() {
		return NewRenderError(ErrCodeInvalidInput, "document total cannot be negative", nil)
	}
	for _, photo := range d.Photos {
		if photo.URL == "" {
			return NewRenderError(ErrCodeInvalidInput, "attachment URL is required", nil)
		}
	}
	return nil
}
