package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// QuotationService handles quotation lifecycle operations
type QuotationService struct {
	quotationRepo billing.QuotationRepository
	customerRepo  crm.CustomerRepository
	numbers       billing.NumberGenerator
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(quotationRepo billing.QuotationRepository, customerRepo crm.CustomerRepository, numbers billing.NumberGenerator) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		numbers:       numbers,
	}
}

// Create creates a draft quotation with its line items
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, billing.DocumentTypeQuotation)
	if err != nil {
		return nil, err
	}

	quotation, err := billing.NewQuotation(number, customer.ID, customer.Name, req.IssueDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if req.Subject != "" {
		if err := quotation.SetSubject(req.Subject); err != nil {
			return nil, err
		}
	}
	if req.Terms != "" {
		quotation.SetTerms(req.Terms)
	}
	for _, item := range req.Items {
		if _, err := quotation.AddItem(item.Description, item.Category, item.Unit, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.DepositPercent != nil && !req.DepositPercent.IsZero() {
		if err := quotation.RequireDeposit(*req.DepositPercent); err != nil {
			return nil, err
		}
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByID retrieves a quotation by ID
func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// List retrieves quotations with filtering and pagination
func (s *QuotationService) List(ctx context.Context, filter DocumentListFilter) ([]QuotationResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var (
		quotations []billing.Quotation
		err        error
	)
	if filter.Status != "" {
		status := billing.QuotationStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown quotation status: "+filter.Status)
		}
		quotations, err = s.quotationRepo.FindByStatus(ctx, status, domainFilter)
	} else {
		quotations, err = s.quotationRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.quotationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		responses[i] = ToQuotationResponse(&quotations[i])
	}
	return responses, total, nil
}

// Send marks a quotation as sent to the customer
func (s *QuotationService) Send(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *billing.Quotation) error {
		return q.Send()
	})
}

// Accept marks a quotation as accepted, recording the customer signature
// when provided
func (s *QuotationService) Accept(ctx context.Context, id uuid.UUID, req AcceptQuotationRequest) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *billing.Quotation) error {
		return q.Accept(req.SignatureData)
	})
}

// Reject marks a quotation as rejected
func (s *QuotationService) Reject(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, id, func(q *billing.Quotation) error {
		return q.Reject()
	})
}

// ExpireStale marks sent quotations past their expiry date as expired.
// Returns the number of quotations expired.
func (s *QuotationService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	quotations, err := s.quotationRepo.FindByStatus(ctx, billing.QuotationStatusSent, shared.Filter{Page: 1, PageSize: 500})
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range quotations {
		q := &quotations[i]
		if q.ExpiryDate.IsZero() || now.Before(q.ExpiryDate) {
			continue
		}
		if err := q.MarkExpired(); err != nil {
			continue
		}
		if err := s.quotationRepo.Save(ctx, q); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// Delete removes a quotation
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.quotationRepo.Delete(ctx, id)
}

func (s *QuotationService) transition(ctx context.Context, id uuid.UUID, fn func(*billing.Quotation) error) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(quotation); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

func toDomainFilter(filter DocumentListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		if filter.OrderDir == "" {
			filter.OrderDir = "desc"
		}
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
}
