package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/shared"
)

func newQuotationService(t *testing.T) (*QuotationService, *MockQuotationRepository, *MockCustomerRepository, *MockNumberGenerator) {
	t.Helper()
	quotationRepo := new(MockQuotationRepository)
	customerRepo := new(MockCustomerRepository)
	numbers := new(MockNumberGenerator)
	return NewQuotationService(quotationRepo, customerRepo, numbers), quotationRepo, customerRepo, numbers
}

func TestQuotationService_Create(t *testing.T) {
	t.Run("creates draft with items and deposit", func(t *testing.T) {
		service, quotationRepo, customerRepo, numbers := newQuotationService(t)

		customer, err := crm.NewCustomer("Ahmad Faizal", "012-3456789", "")
		require.NoError(t, err)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		numbers.On("Next", mock.Anything, billing.DocumentTypeQuotation).Return("Q-1001", nil)
		quotationRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Quotation")).Return(nil)

		deposit := decimal.NewFromInt(30)
		resp, err := service.Create(context.Background(), CreateQuotationRequest{
			CustomerID: customer.ID,
			IssueDate:  fixedTime,
			ExpiryDate: fixedTime.AddDate(0, 1, 0),
			Subject:    "Bathroom renovation",
			Items: []LineItemRequest{
				{Description: "Demolish old tiles", Category: "Tiling", Unit: "sqft", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(5)},
				{Description: "Replace piping", Category: "Plumbing", Unit: "job", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1500)},
			},
			DepositPercent: &deposit,
		})

		require.NoError(t, err)
		assert.Equal(t, "Q-1001", resp.Number)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "2000", resp.Subtotal.String())
		assert.True(t, resp.RequiresDeposit)
		assert.Equal(t, "600", resp.DepositAmount.String())
		require.Len(t, resp.Items, 2)
		quotationRepo.AssertExpectations(t)
	})

	t.Run("fails when number generation fails", func(t *testing.T) {
		service, quotationRepo, customerRepo, numbers := newQuotationService(t)

		customer, err := crm.NewCustomer("Lim Wei", "016-7778888", "")
		require.NoError(t, err)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		numbers.On("Next", mock.Anything, billing.DocumentTypeQuotation).Return("", assert.AnError)

		resp, err := service.Create(context.Background(), CreateQuotationRequest{
			CustomerID: customer.ID,
			Items: []LineItemRequest{
				{Description: "Job", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestQuotationService_Lifecycle(t *testing.T) {
	newQuotation := func(t *testing.T) *billing.Quotation {
		t.Helper()
		q, err := billing.NewQuotation("Q-1001", uuid.New(), "Ahmad Faizal", fixedTime, fixedTime.AddDate(0, 1, 0))
		require.NoError(t, err)
		_, err = q.AddItem("Pipe work", "Plumbing", "job", decimal.NewFromInt(1), decimal.NewFromInt(800))
		require.NoError(t, err)
		return q
	}

	t.Run("send then accept with signature", func(t *testing.T) {
		service, quotationRepo, _, _ := newQuotationService(t)

		quotation := newQuotation(t)
		quotationRepo.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
		quotationRepo.On("Save", mock.Anything, quotation).Return(nil)

		resp, err := service.Send(context.Background(), quotation.ID)
		require.NoError(t, err)
		assert.Equal(t, "sent", resp.Status)

		resp, err = service.Accept(context.Background(), quotation.ID, AcceptQuotationRequest{
			SignatureData: "data:image/png;base64,aGVsbG8=",
		})
		require.NoError(t, err)
		assert.Equal(t, "accepted", resp.Status)
		assert.NotNil(t, resp.DecidedAt)
	})

	t.Run("reject from draft fails", func(t *testing.T) {
		service, quotationRepo, _, _ := newQuotationService(t)

		quotation := newQuotation(t)
		quotationRepo.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)

		resp, err := service.Reject(context.Background(), quotation.ID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestQuotationService_ExpireStale(t *testing.T) {
	t.Run("expires sent quotations past expiry", func(t *testing.T) {
		service, quotationRepo, _, _ := newQuotationService(t)

		stale, err := billing.NewQuotation("Q-1001", uuid.New(), "Ahmad Faizal", fixedTime.AddDate(0, -2, 0), fixedTime.AddDate(0, -1, 0))
		require.NoError(t, err)
		_, err = stale.AddItem("Job", "", "", decimal.NewFromInt(1), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, stale.Send())

		fresh, err := billing.NewQuotation("Q-1002", uuid.New(), "Lim Wei", fixedTime, fixedTime.AddDate(0, 1, 0))
		require.NoError(t, err)
		_, err = fresh.AddItem("Job", "", "", decimal.NewFromInt(1), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, fresh.Send())

		quotationRepo.On("FindByStatus", mock.Anything, billing.QuotationStatusSent, mock.Anything).
			Return([]billing.Quotation{*stale, *fresh}, nil)
		quotationRepo.On("Save", mock.Anything, mock.MatchedBy(func(q *billing.Quotation) bool {
			return q.Number == "Q-1001" && q.Status == billing.QuotationStatusExpired
		})).Return(nil)

		expired, err := service.ExpireStale(context.Background(), fixedTime)

		require.NoError(t, err)
		assert.Equal(t, 1, expired)
		quotationRepo.AssertExpectations(t)
	})
}

func TestQuotationService_List(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		service, _, _, _ := newQuotationService(t)

		responses, total, err := service.List(context.Background(), DocumentListFilter{Status: "archived"})

		assert.Error(t, err)
		assert.Nil(t, responses)
		assert.Zero(t, total)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("defaults to newest first", func(t *testing.T) {
		service, quotationRepo, _, _ := newQuotationService(t)

		quotationRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.OrderBy == "created_at" && f.OrderDir == "desc" && f.PageSize == 20
		})).Return([]billing.Quotation{}, nil)
		quotationRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, _, err := service.List(context.Background(), DocumentListFilter{})
		require.NoError(t, err)
		quotationRepo.AssertExpectations(t)
	})
}
