package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodEWallet      PaymentMethod = "ewallet"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodEWallet:
		return true
	}
	return false
}

// PaymentReceipt records a payment received against an invoice
type PaymentReceipt struct {
	shared.BaseAggregateRoot
	Number        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null"`
	ReceivedAt    time.Time       `gorm:"not null"`
	Reference     string          `gorm:"type:varchar(200)"` // Transfer/cheque reference
}

// TableName returns the table name for GORM
func (PaymentReceipt) TableName() string {
	return "payment_receipts"
}

// NewPaymentReceipt creates a receipt for a payment against an invoice
func NewPaymentReceipt(number string, inv *Invoice, amount decimal.Decimal, method PaymentMethod, receivedAt time.Time, reference string) (*PaymentReceipt, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number cannot be empty")
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	return &PaymentReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		InvoiceID:         inv.ID,
		InvoiceNumber:     inv.Number,
		CustomerID:        inv.CustomerID,
		Amount:            amount.Round(2),
		Method:            method,
		ReceivedAt:        receivedAt,
		Reference:         reference,
	}, nil
}
