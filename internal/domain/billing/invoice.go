package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// InvoiceStatus represents the payment-status lifecycle of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// DisplayName returns the customer-facing label used on rendered documents
func (s InvoiceStatus) DisplayName() string {
	switch s {
	case InvoiceStatusUnpaid:
		return "Unpaid"
	case InvoiceStatusPartiallyPaid:
		return "Partially Paid"
	case InvoiceStatusPaid:
		return "Paid"
	case InvoiceStatusOverdue:
		return "Overdue"
	}
	return string(s)
}

// WorkPhoto is a photo of completed work attached to an invoice
type WorkPhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(1000);not null"`
	Caption   string    `gorm:"type:varchar(200)"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (WorkPhoto) TableName() string {
	return "invoice_work_photos"
}

// Invoice is a billing document, optionally derived from an accepted
// quotation. It is the aggregate root for invoice operations.
type Invoice struct {
	shared.BaseAggregateRoot
	Number           string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	QuotationID      *uuid.UUID `gorm:"type:uuid;index"` // Source quotation, if derived
	QuotationNumber  string    `gorm:"type:varchar(50)"` // Printed as a cross-reference
	CustomerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName     string    `gorm:"type:varchar(200);not null"`
	IssueDate        time.Time `gorm:"not null"`
	DueDate          time.Time
	Status           InvoiceStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Subject          string          `gorm:"type:varchar(500)"`
	Terms            string          `gorm:"type:text"`
	Items            []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
	Photos           []WorkPhoto     `gorm:"foreignKey:InvoiceID"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate          decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // Percent
	TaxAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsDepositInvoice bool            `gorm:"not null;default:false"`
	DepositAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PDFURL           string          `gorm:"type:varchar(500)"`
	PaidAt           *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new unpaid invoice
func NewInvoice(number string, customerID uuid.UUID, customerName string, issueDate, dueDate time.Time) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Status:            InvoiceStatusUnpaid,
		Items:             make([]InvoiceItem, 0),
		Photos:            make([]WorkPhoto, 0),
		Subtotal:          decimal.Zero,
		TaxRate:           decimal.Zero,
		TaxAmount:         decimal.Zero,
		DepositAmount:     decimal.Zero,
		Total:             decimal.Zero,
		PaidAmount:        decimal.Zero,
	}, nil
}

// NewInvoiceFromQuotation derives an invoice from an accepted quotation,
// copying its customer, subject, terms and line items
func NewInvoiceFromQuotation(number string, q *Quotation, issueDate, dueDate time.Time) (*Invoice, error) {
	if q == nil {
		return nil, shared.NewDomainError("INVALID_QUOTATION", "Source quotation is required")
	}
	if q.Status != QuotationStatusAccepted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only accepted quotations can be invoiced")
	}

	inv, err := NewInvoice(number, q.CustomerID, q.CustomerName, issueDate, dueDate)
	if err != nil {
		return nil, err
	}

	inv.QuotationID = &q.ID
	inv.QuotationNumber = q.Number
	inv.Subject = q.Subject
	inv.Terms = q.Terms

	for _, item := range q.Items {
		if _, err := inv.AddItem(item.Description, item.Category, item.Unit, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// AddItem adds a priced row to the invoice
// Only allowed before any payment has been recorded
func (inv *Invoice) AddItem(description, category, unit string, quantity, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	if !inv.PaidAmount.IsZero() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items after payment has been recorded")
	}

	line, err := NewLineItem(description, category, unit, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := InvoiceItem{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		LineItem:  line,
		SortOrder: len(inv.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}

	inv.Items = append(inv.Items, item)
	inv.recalculateTotals()
	inv.UpdatedAt = now

	return &item, nil
}

// SetTaxRate applies a percentage tax on the subtotal
func (inv *Invoice) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	inv.TaxRate = rate
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return nil
}

// MarkDepositInvoice flags this invoice as billing a quotation deposit
// of the given amount. The deposit is informational on the printed
// document; it does not change the invoice total.
func (inv *Invoice) MarkDepositInvoice(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_DEPOSIT", "Deposit amount must be positive")
	}

	inv.IsDepositInvoice = true
	inv.DepositAmount = amount.Round(2)
	inv.UpdatedAt = time.Now()

	return nil
}

// SetSubject sets the one-line subject shown on the document
func (inv *Invoice) SetSubject(subject string) error {
	if len(subject) > 500 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 500 characters")
	}
	inv.Subject = subject
	inv.UpdatedAt = time.Now()
	return nil
}

// SetTerms sets the free-text terms printed at the bottom of the document
func (inv *Invoice) SetTerms(terms string) {
	inv.Terms = terms
	inv.UpdatedAt = time.Now()
}

// AddPhoto attaches a work photo to the invoice
func (inv *Invoice) AddPhoto(url, caption string) (*WorkPhoto, error) {
	if url == "" {
		return nil, shared.NewDomainError("INVALID_PHOTO", "Photo URL cannot be empty")
	}

	photo := WorkPhoto{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		URL:       url,
		Caption:   caption,
		SortOrder: len(inv.Photos),
		CreatedAt: time.Now(),
	}

	inv.Photos = append(inv.Photos, photo)
	inv.UpdatedAt = time.Now()

	return &photo, nil
}

// RecordPayment records a payment against the invoice and moves the
// payment status forward. Overpayment is rejected.
func (inv *Invoice) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if inv.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already fully paid")
	}

	outstanding := inv.Total.Sub(inv.PaidAmount)
	if amount.GreaterThan(outstanding) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds outstanding balance")
	}

	now := time.Now()
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	if inv.PaidAmount.GreaterThanOrEqual(inv.Total) {
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &now
	} else {
		inv.Status = InvoiceStatusPartiallyPaid
	}
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// MarkOverdue marks an unpaid or partially paid invoice as overdue
func (inv *Invoice) MarkOverdue(now time.Time) error {
	if inv.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot become overdue")
	}
	if inv.DueDate.IsZero() || now.Before(inv.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}

	inv.Status = InvoiceStatusOverdue
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// Outstanding returns the unpaid balance
func (inv *Invoice) Outstanding() decimal.Decimal {
	return inv.Total.Sub(inv.PaidAmount)
}

// SetRenderedPDF records the public URL of the rendered document
func (inv *Invoice) SetRenderedPDF(url string) {
	inv.PDFURL = url
	inv.UpdatedAt = time.Now()
}

// recalculateTotals recomputes subtotal, tax and total from items
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
}
