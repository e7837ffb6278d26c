package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier publishes operator notifications about billing events
type Notifier interface {
	Publish(ctx context.Context, severity notification.Severity, title, message string) error
}

// InvoiceService handles invoice and payment operations
type InvoiceService struct {
	invoiceRepo   billing.InvoiceRepository
	quotationRepo billing.QuotationRepository
	receiptRepo   billing.PaymentReceiptRepository
	customerRepo  crm.CustomerRepository
	numbers       billing.NumberGenerator
	notifier      Notifier
	logger        *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	quotationRepo billing.QuotationRepository,
	receiptRepo billing.PaymentReceiptRepository,
	customerRepo crm.CustomerRepository,
	numbers billing.NumberGenerator,
	notifier Notifier,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		receiptRepo:   receiptRepo,
		customerRepo:  customerRepo,
		numbers:       numbers,
		notifier:      notifier,
		logger:        logger,
	}
}

// Create creates an invoice with its line items
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, billing.DocumentTypeInvoice)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, customer.ID, customer.Name, req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	if req.Subject != "" {
		if err := invoice.SetSubject(req.Subject); err != nil {
			return nil, err
		}
	}
	if req.Terms != "" {
		invoice.SetTerms(req.Terms)
	}
	for _, item := range req.Items {
		if _, err := invoice.AddItem(item.Description, item.Category, item.Unit, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.TaxRate != nil {
		if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// CreateFromQuotation derives an invoice from an accepted quotation.
// A deposit invoice bills only the quotation's deposit amount; a full
// invoice copies every line item.
func (s *InvoiceService) CreateFromQuotation(ctx context.Context, req CreateInvoiceFromQuotationRequest) (*InvoiceResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, req.QuotationID)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, billing.DocumentTypeInvoice)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoiceFromQuotation(number, quotation, req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	if req.TaxRate != nil {
		if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.DepositInvoice {
		if !quotation.RequiresDeposit {
			return nil, shared.NewDomainError("INVALID_STATE", "Quotation does not require a deposit")
		}
		if err := invoice.MarkDepositInvoice(quotation.DepositAmount); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter DocumentListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var (
		invoices []billing.Invoice
		err      error
	)
	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+filter.Status)
		}
		invoices, err = s.invoiceRepo.FindByStatus(ctx, status, domainFilter)
	} else {
		invoices, err = s.invoiceRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}

// RecordPayment records a payment against an invoice and issues a receipt
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*ReceiptResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	receiptNumber, err := s.numbers.Next(ctx, billing.DocumentTypeReceipt)
	if err != nil {
		return nil, err
	}
	receipt, err := billing.NewPaymentReceipt(receiptNumber, invoice, req.Amount, billing.PaymentMethod(req.Method), req.ReceivedAt, req.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	if invoice.Status == billing.InvoiceStatusPaid {
		if err := s.notifier.Publish(ctx, notification.SeveritySuccess,
			"Invoice paid in full",
			fmt.Sprintf("Invoice %s for %s is fully paid", invoice.Number, invoice.CustomerName)); err != nil {
			s.logger.Warn("failed to publish payment notification", zap.Error(err))
		}
	}

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// ListReceipts retrieves the receipts recorded against an invoice
func (s *InvoiceService) ListReceipts(ctx context.Context, invoiceID uuid.UUID) ([]ReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToReceiptResponse(&receipts[i])
	}
	return responses, nil
}

// AddPhoto attaches a work photo to an invoice
func (s *InvoiceService) AddPhoto(ctx context.Context, invoiceID uuid.UUID, req AddPhotoRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if _, err := invoice.AddPhoto(req.URL, req.Caption); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// SweepOverdue marks unpaid invoices past their due date as overdue and
// notifies the operator for each. Returns the number of invoices marked.
func (s *InvoiceService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	marked := 0
	for _, status := range []billing.InvoiceStatus{billing.InvoiceStatusUnpaid, billing.InvoiceStatusPartiallyPaid} {
		invoices, err := s.invoiceRepo.FindByStatus(ctx, status, shared.Filter{Page: 1, PageSize: 500})
		if err != nil {
			return marked, err
		}
		for i := range invoices {
			inv := &invoices[i]
			if err := inv.MarkOverdue(now); err != nil {
				continue
			}
			if err := s.invoiceRepo.Save(ctx, inv); err != nil {
				return marked, err
			}
			marked++

			if err := s.notifier.Publish(ctx, notification.SeverityWarning,
				"Invoice overdue",
				fmt.Sprintf("Invoice %s for %s is overdue (outstanding %s)", inv.Number, inv.CustomerName, inv.Outstanding().StringFixed(2))); err != nil {
				s.logger.Warn("failed to publish overdue notification", zap.Error(err))
			}
		}
	}
	return marked, nil
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
