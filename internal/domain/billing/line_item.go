package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// LineItem holds the priced fields shared by quotation and invoice rows.
// Amount is computed once at construction (quantity x unit price, rounded
// to 2 decimal places) and is treated as authoritative from then on.
type LineItem struct {
	Description string          `gorm:"type:varchar(500);not null"`
	Category    string          `gorm:"type:varchar(100)"` // Empty means uncategorised
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit        string          `gorm:"type:varchar(50)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// NewLineItem creates a line item and computes its amount
func NewLineItem(description, category, unit string, quantity, unitPrice decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(description) == "" {
		return LineItem{}, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return LineItem{
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice).Round(2),
	}, nil
}

// QuotationItem is one priced row of a quotation
type QuotationItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItem    `gorm:"embedded"`
	SortOrder   int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// InvoiceItem is one priced row of an invoice
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItem  `gorm:"embedded"`
	SortOrder int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
