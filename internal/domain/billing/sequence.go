package billing

import (
	"context"
	"fmt"
)

// DocumentType identifies the numbering series a document draws from
type DocumentType string

const (
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeReceipt   DocumentType = "receipt"
)

// IsValid checks if the document type is known
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeQuotation, DocumentTypeInvoice, DocumentTypeReceipt:
		return true
	}
	return false
}

// Prefix returns the reference-number prefix for the document type
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeQuotation:
		return "Q"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeReceipt:
		return "RCT"
	}
	return ""
}

// FormatNumber builds a reference number from a sequence value,
// e.g. Q-1001, INV-1001, RCT-1001
func (t DocumentType) FormatNumber(seq int64) string {
	return fmt.Sprintf("%s-%d", t.Prefix(), seq)
}

// DocumentSequence is the persisted counter backing document numbering
type DocumentSequence struct {
	Kind      string `gorm:"type:varchar(20);primaryKey"`
	NextValue int64  `gorm:"not null;default:1001"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// NumberGenerator issues the next unique reference number for a
// document type
type NumberGenerator interface {
	Next(ctx context.Context, docType DocumentType) (string, error)
}
