package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// DisplayName returns the customer-facing label used on rendered documents
func (s QuotationStatus) DisplayName() string {
	switch s {
	case QuotationStatusDraft:
		return "Draft"
	case QuotationStatusSent:
		return "Sent"
	case QuotationStatusAccepted:
		return "Accepted"
	case QuotationStatusRejected:
		return "Rejected"
	case QuotationStatusExpired:
		return "Expired"
	}
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s QuotationStatus) CanTransitionTo(target QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft:
		return target == QuotationStatusSent
	case QuotationStatusSent:
		return target == QuotationStatusAccepted || target == QuotationStatusRejected || target == QuotationStatusExpired
	case QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired:
		return false // Terminal states
	}
	return false
}

// Quotation is a priced proposal sent to a customer.
// It is the aggregate root for quotation operations.
type Quotation struct {
	shared.BaseAggregateRoot
	Number          string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName    string    `gorm:"type:varchar(200);not null"`
	IssueDate       time.Time `gorm:"not null"`
	ExpiryDate      time.Time
	Status          QuotationStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Subject         string          `gorm:"type:varchar(500)"`
	Terms           string          `gorm:"type:text"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RequiresDeposit bool            `gorm:"not null;default:false"`
	DepositPercent  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	DepositAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SignatureData   string          `gorm:"type:text"` // Customer signature as data URI
	PDFURL          string          `gorm:"type:varchar(500)"`
	SentAt          *time.Time
	DecidedAt       *time.Time
}

// TableName returns the table name for GORM
func (Quotation) TableName() string {
	return "quotations"
}

// NewQuotation creates a new draft quotation
func NewQuotation(number string, customerID uuid.UUID, customerName string, issueDate, expiryDate time.Time) (*Quotation, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quotation number cannot be empty")
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

	return &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		IssueDate:         issueDate,
		ExpiryDate:        expiryDate,
		Status:            QuotationStatusDraft,
		Items:             make([]QuotationItem, 0),
		Subtotal:          decimal.Zero,
		DepositPercent:    decimal.Zero,
		DepositAmount:     decimal.Zero,
		Total:             decimal.Zero,
	}, nil
}

// AddItem adds a priced row to the quotation
// Only allowed in draft status
func (q *Quotation) AddItem(description, category, unit string, quantity, unitPrice decimal.Decimal) (*QuotationItem, error) {
	if q.Status != QuotationStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft quotation")
	}

	line, err := NewLineItem(description, category, unit, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := QuotationItem{
		ID:          uuid.New(),
		QuotationID: q.ID,
		LineItem:    line,
		SortOrder:   len(q.Items),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	q.Items = append(q.Items, item)
	q.recalculateTotals()
	q.UpdatedAt = now

	return &item, nil
}

// RemoveItem removes an item from the quotation
// Only allowed in draft status
func (q *Quotation) RemoveItem(itemID uuid.UUID) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft quotation")
	}

	for i, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			q.recalculateTotals()
			q.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Item not found in quotation")
}

// SetSubject sets the one-line subject shown on the document
func (q *Quotation) SetSubject(subject string) error {
	if len(subject) > 500 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 500 characters")
	}
	q.Subject = strings.TrimSpace(subject)
	q.UpdatedAt = time.Now()
	return nil
}

// SetTerms sets the free-text terms printed at the bottom of the document
func (q *Quotation) SetTerms(terms string) {
	q.Terms = terms
	q.UpdatedAt = time.Now()
}

// RequireDeposit marks the quotation as requiring a deposit of the given
// percentage of the subtotal. The deposit amount is derived from the
// current subtotal and re-derived whenever totals change.
func (q *Quotation) RequireDeposit(percent decimal.Decimal) error {
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DEPOSIT", "Deposit percent must be between 0 and 100")
	}

	q.RequiresDeposit = true
	q.DepositPercent = percent
	q.recalculateTotals()
	q.UpdatedAt = time.Now()

	return nil
}

// ClearDeposit removes the deposit requirement
func (q *Quotation) ClearDeposit() {
	q.RequiresDeposit = false
	q.DepositPercent = decimal.Zero
	q.DepositAmount = decimal.Zero
	q.UpdatedAt = time.Now()
}

// Send marks the quotation as sent to the customer
func (q *Quotation) Send() error {
	if !q.Status.CanTransitionTo(QuotationStatusSent) {
		return shared.NewDomainError("INVALID_STATE", "Quotation cannot be sent from status "+q.Status.String())
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot send a quotation without items")
	}

	now := time.Now()
	q.Status = QuotationStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	return nil
}

// Accept marks the quotation as accepted, optionally recording the
// customer's signature as a data URI
func (q *Quotation) Accept(signatureData string) error {
	if !q.Status.CanTransitionTo(QuotationStatusAccepted) {
		return shared.NewDomainError("INVALID_STATE", "Quotation cannot be accepted from status "+q.Status.String())
	}

	now := time.Now()
	q.Status = QuotationStatusAccepted
	q.SignatureData = signatureData
	q.DecidedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	return nil
}

// Reject marks the quotation as rejected
func (q *Quotation) Reject() error {
	if !q.Status.CanTransitionTo(QuotationStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", "Quotation cannot be rejected from status "+q.Status.String())
	}

	now := time.Now()
	q.Status = QuotationStatusRejected
	q.DecidedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	return nil
}

// MarkExpired marks a sent quotation as expired
func (q *Quotation) MarkExpired() error {
	if !q.Status.CanTransitionTo(QuotationStatusExpired) {
		return shared.NewDomainError("INVALID_STATE", "Quotation cannot expire from status "+q.Status.String())
	}

	now := time.Now()
	q.Status = QuotationStatusExpired
	q.DecidedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	return nil
}

// SetRenderedPDF records the public URL of the rendered document
func (q *Quotation) SetRenderedPDF(url string) {
	q.PDFURL = url
	q.UpdatedAt = time.Now()
}

// recalculateTotals recomputes subtotal, deposit amount and total from items
func (q *Quotation) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	q.Subtotal = subtotal.Round(2)
	q.Total = q.Subtotal
	if q.RequiresDeposit {
		q.DepositAmount = q.Subtotal.Mul(q.DepositPercent).Div(decimal.NewFromInt(100)).Round(2)
	}
}
