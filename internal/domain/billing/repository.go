package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// QuotationRepository defines persistence operations for quotations
type QuotationRepository interface {
	shared.Repository[Quotation]
	FindByNumber(ctx context.Context, number string) (*Quotation, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Quotation, error)
	FindByStatus(ctx context.Context, status QuotationStatus, filter shared.Filter) ([]Quotation, error)
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	shared.Repository[Invoice]
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindByStatus(ctx context.Context, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)
}

// PaymentReceiptRepository defines persistence operations for receipts
type PaymentReceiptRepository interface {
	shared.Repository[PaymentReceipt]
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentReceipt, error)
}
