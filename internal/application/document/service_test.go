package document

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/shared"
	"github.com/tradeworks/backend/internal/infrastructure/render"
	"go.uber.org/zap"
)

// =============================================================================
// Mocks
// =============================================================================

// MockQuotationRepository is a mock implementation of billing.QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByNumber(ctx context.Context, number string) (*billing.Quotation, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByStatus(ctx context.Context, status billing.QuotationStatus, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of crm.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*crm.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockComposer is a mock implementation of Composer
type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Compose(ctx context.Context, doc *render.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCapturer is a mock implementation of Capturer
type MockCapturer struct {
	mock.Mock
}

func (m *MockCapturer) Capture(ctx context.Context, req *render.CaptureRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUploader is a mock implementation of Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, kind render.DocumentKind, reference string, data []byte) (string, error) {
	args := m.Called(ctx, kind, reference, data)
	return args.String(0), args.Error(1)
}

// =============================================================================
// Fixtures
// =============================================================================

var testIssueDate = time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

func testCompany() render.CompanyInfo {
	return render.CompanyInfo{
		Name:         "TradeWorks Renovation & Services",
		AddressLines: []string{"12 Jalan Industri 3", "47100 Puchong, Selangor"},
		Phone:        "+60 3-1234 5678",
		Email:        "office@tradeworks.example",
	}
}

func testFixtures(t *testing.T) (*billing.Quotation, *billing.Invoice, *crm.Customer) {
	t.Helper()

	customer, err := crm.NewCustomer("Ahmad Faizal", "012-3456789", "ahmad@example.com")
	require.NoError(t, err)
	require.NoError(t, customer.SetAddress("B-12-3", "Jalan Ampang, Kuala Lumpur"))

	quotation, err := billing.NewQuotation("Q-1001", customer.ID, customer.Name, testIssueDate, testIssueDate.AddDate(0, 1, 0))
	require.NoError(t, err)
	_, err = quotation.AddItem("Replace piping", "Plumbing", "job", decimal.NewFromInt(1), decimal.NewFromInt(1500))
	require.NoError(t, err)

	invoice, err := billing.NewInvoice("INV-1001", customer.ID, customer.Name, testIssueDate, testIssueDate.AddDate(0, 0, 30))
	require.NoError(t, err)
	_, err = invoice.AddItem("Tiling work", "Tiling", "sqft", decimal.NewFromInt(100), decimal.NewFromInt(5))
	require.NoError(t, err)

	return quotation, invoice, customer
}

func newService(t *testing.T) (*Service, *MockQuotationRepository, *MockInvoiceRepository, *MockCustomerRepository, *MockComposer, *MockCapturer, *MockUploader) {
	t.Helper()
	quotationRepo := new(MockQuotationRepository)
	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)
	composer := new(MockComposer)
	capturer := new(MockCapturer)
	uploader := new(MockUploader)
	service := NewService(quotationRepo, invoiceRepo, customerRepo, composer, capturer, uploader, testCompany(), zap.NewNop())
	return service, quotationRepo, invoiceRepo, customerRepo, composer, capturer, uploader
}

// =============================================================================
// Tests
// =============================================================================

func TestBuildQuotationDocument(t *testing.T) {
	t.Run("copies stored totals without recomputation", func(t *testing.T) {
		quotation, _, customer := testFixtures(t)
		// Simulate a historical document whose stored total diverges
		// from its line items
		quotation.Total = decimal.NewFromInt(9999)

		doc := BuildQuotationDocument(quotation, customer)

		assert.Equal(t, render.KindQuotation, doc.Kind)
		assert.Equal(t, "Q-1001", doc.ReferenceNumber)
		assert.Equal(t, "9999", doc.Total.String())
		assert.Equal(t, "Ahmad Faizal", doc.Customer.Name)
		assert.Equal(t, "B-12-3", doc.Customer.UnitNumber)
		require.Len(t, doc.Items, 1)
		assert.NoError(t, doc.Validate())
	})
}

func TestBuildInvoiceDocument(t *testing.T) {
	t.Run("maps photos and cross reference", func(t *testing.T) {
		_, invoice, customer := testFixtures(t)
		invoice.QuotationNumber = "Q-1001"
		_, err := invoice.AddPhoto("https://cdn.example/photo1.jpg", "Before")
		require.NoError(t, err)

		doc := BuildInvoiceDocument(invoice, customer)

		assert.Equal(t, render.KindInvoice, doc.Kind)
		assert.Equal(t, "Q-1001", doc.SourceQuotation)
		require.Len(t, doc.Photos, 1)
		assert.Equal(t, "Before", doc.Photos[0].Caption)
		assert.NoError(t, doc.Validate())
	})
}

func TestRenderHTML(t *testing.T) {
	t.Run("renders grouped items and totals", func(t *testing.T) {
		quotation, _, customer := testFixtures(t)
		doc := BuildQuotationDocument(quotation, customer)

		html, err := RenderHTML(doc, testCompany())

		require.NoError(t, err)
		assert.Contains(t, html, "QUOTATION")
		assert.Contains(t, html, "1- Plumbing")
		assert.Contains(t, html, "RM 1500.00")
		assert.Contains(t, html, "TradeWorks Renovation &amp; Services")
	})

	t.Run("keeps signature data uri intact", func(t *testing.T) {
		quotation, _, customer := testFixtures(t)
		require.NoError(t, quotation.Send())
		require.NoError(t, quotation.Accept("data:image/png;base64,aGVsbG8="))
		doc := BuildQuotationDocument(quotation, customer)

		html, err := RenderHTML(doc, testCompany())

		require.NoError(t, err)
		assert.Contains(t, html, "data:image/png;base64,aGVsbG8=")
		assert.NotContains(t, html, "ZgotmplZ")
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		doc := &render.Document{Kind: render.KindQuotation}

		_, err := RenderHTML(doc, testCompany())

		var renderErr *render.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, render.ErrCodeInvalidInput, renderErr.Code)
	})
}

func TestService_DownloadQuotation(t *testing.T) {
	t.Run("vector strategy composes pdf", func(t *testing.T) {
		service, quotationRepo, _, customerRepo, composer, _, _ := newService(t)

		quotation, _, customer := testFixtures(t)
		quotationRepo.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		composer.On("Compose", mock.Anything, mock.AnythingOfType("*render.Document")).Return([]byte("%PDF-1.3"), nil)

		download, err := service.DownloadQuotation(context.Background(), quotation.ID, StrategyVector)

		require.NoError(t, err)
		assert.Equal(t, "quotation-Q-1001.pdf", download.Filename)
		assert.Equal(t, "application/pdf", download.ContentType)
		assert.True(t, strings.HasPrefix(string(download.Data), "%PDF"))
	})

	t.Run("capture strategy renders html first", func(t *testing.T) {
		service, quotationRepo, _, customerRepo, _, capturer, _ := newService(t)

		quotation, _, customer := testFixtures(t)
		quotationRepo.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		capturer.On("Capture", mock.Anything, mock.MatchedBy(func(req *render.CaptureRequest) bool {
			return req.MultiPage && strings.Contains(req.HTML, "Q-1001")
		})).Return([]byte("%PDF-1.3"), nil)

		download, err := service.DownloadQuotation(context.Background(), quotation.ID, StrategyCapture)

		require.NoError(t, err)
		assert.Equal(t, "quotation-Q-1001.pdf", download.Filename)
		capturer.AssertExpectations(t)
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		service, quotationRepo, _, customerRepo, _, _, _ := newService(t)

		quotation, _, customer := testFixtures(t)
		quotationRepo.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		download, err := service.DownloadQuotation(context.Background(), quotation.ID, Strategy("raster"))

		assert.Error(t, err)
		assert.Nil(t, download)
	})
}

func TestService_UploadInvoice(t *testing.T) {
	t.Run("records public url on invoice", func(t *testing.T) {
		service, _, invoiceRepo, customerRepo, composer, _, uploader := newService(t)

		_, invoice, customer := testFixtures(t)
		invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		composer.On("Compose", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)
		uploader.On("Upload", mock.Anything, render.KindInvoice, "INV-1001", mock.Anything).
			Return("https://storage.local/pdfs/invoice-INV-1001-1.pdf", nil)
		invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		url, err := service.UploadInvoice(context.Background(), invoice.ID, StrategyVector)

		require.NoError(t, err)
		assert.Equal(t, "https://storage.local/pdfs/invoice-INV-1001-1.pdf", url)
		assert.Equal(t, url, invoice.PDFURL)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("upload failure leaves invoice untouched", func(t *testing.T) {
		service, _, invoiceRepo, customerRepo, composer, _, uploader := newService(t)

		_, invoice, customer := testFixtures(t)
		invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		composer.On("Compose", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)
		uploader.On("Upload", mock.Anything, render.KindInvoice, "INV-1001", mock.Anything).
			Return("", render.NewRenderError(render.ErrCodeStorageFailed, "pdf upload failed", nil))

		url, err := service.UploadInvoice(context.Background(), invoice.ID, StrategyVector)

		assert.Error(t, err)
		assert.Empty(t, url)
		assert.Empty(t, invoice.PDFURL)
		invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
