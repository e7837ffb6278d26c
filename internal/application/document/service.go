// Package document renders quotations and invoices to PDF and routes
// the output to a download or object storage.
package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/shared"
	"github.com/tradeworks/backend/internal/infrastructure/render"
	"go.uber.org/zap"
)

// Strategy selects how a document is turned into PDF bytes
type Strategy string

const (
	// StrategyVector draws the document directly as PDF primitives
	StrategyVector Strategy = "vector"
	// StrategyCapture renders the HTML view in a headless browser and
	// embeds page-sized screenshots
	StrategyCapture Strategy = "capture"
)

// IsValid checks if the strategy is known
func (s Strategy) IsValid() bool {
	return s == StrategyVector || s == StrategyCapture
}

// Composer is the vector render strategy
type Composer interface {
	Compose(ctx context.Context, doc *render.Document) ([]byte, error)
}

// Capturer is the headless-browser render strategy
type Capturer interface {
	Capture(ctx context.Context, req *render.CaptureRequest) ([]byte, error)
}

// Uploader stores rendered PDFs and resolves their public URL
type Uploader interface {
	Upload(ctx context.Context, kind render.DocumentKind, reference string, data []byte) (string, error)
}

// Service renders billing documents to PDF
type Service struct {
	quotationRepo billing.QuotationRepository
	invoiceRepo   billing.InvoiceRepository
	customerRepo  crm.CustomerRepository
	composer      Composer
	capturer      Capturer
	uploader      Uploader
	company       render.CompanyInfo
	logger        *zap.Logger
}

// NewService creates a new document Service
func NewService(
	quotationRepo billing.QuotationRepository,
	invoiceRepo billing.InvoiceRepository,
	customerRepo crm.CustomerRepository,
	composer Composer,
	capturer Capturer,
	uploader Uploader,
	company render.CompanyInfo,
	logger *zap.Logger,
) *Service {
	return &Service{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		composer:      composer,
		capturer:      capturer,
		uploader:      uploader,
		company:       company,
		logger:        logger,
	}
}

// DownloadQuotation renders a quotation and wraps it for local download
func (s *Service) DownloadQuotation(ctx context.Context, id uuid.UUID, strategy Strategy) (*render.Download, error) {
	doc, err := s.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.renderPDF(ctx, doc, strategy)
	if err != nil {
		s.logger.Error("quotation render failed",
			zap.String("number", doc.ReferenceNumber),
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		return nil, err
	}

	return render.NewDownload(render.KindQuotation, doc.ReferenceNumber, data), nil
}

// DownloadInvoice renders an invoice and wraps it for local download
func (s *Service) DownloadInvoice(ctx context.Context, id uuid.UUID, strategy Strategy) (*render.Download, error) {
	doc, err := s.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.renderPDF(ctx, doc, strategy)
	if err != nil {
		s.logger.Error("invoice render failed",
			zap.String("number", doc.ReferenceNumber),
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		return nil, err
	}

	return render.NewDownload(render.KindInvoice, doc.ReferenceNumber, data), nil
}

// UploadQuotation renders a quotation, stores the PDF and records its
// public URL on the quotation
func (s *Service) UploadQuotation(ctx context.Context, id uuid.UUID, strategy Strategy) (string, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	customer, err := s.customerRepo.FindByID(ctx, quotation.CustomerID)
	if err != nil {
		return "", err
	}

	doc := BuildQuotationDocument(quotation, customer)
	data, err := s.renderPDF(ctx, doc, strategy)
	if err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, render.KindQuotation, doc.ReferenceNumber, data)
	if err != nil {
		return "", err
	}

	quotation.SetRenderedPDF(url)
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return "", err
	}

	s.logger.Info("quotation pdf uploaded",
		zap.String("number", quotation.Number), zap.String("url", url))
	return url, nil
}

// UploadInvoice renders an invoice, stores the PDF and records its
// public URL on the invoice
func (s *Service) UploadInvoice(ctx context.Context, id uuid.UUID, strategy Strategy) (string, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	customer, err := s.customerRepo.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return "", err
	}

	doc := BuildInvoiceDocument(invoice, customer)
	data, err := s.renderPDF(ctx, doc, strategy)
	if err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, render.KindInvoice, doc.ReferenceNumber, data)
	if err != nil {
		return "", err
	}

	invoice.SetRenderedPDF(url)
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return "", err
	}

	s.logger.Info("invoice pdf uploaded",
		zap.String("number", invoice.Number), zap.String("url", url))
	return url, nil
}

func (s *Service) quotationDocument(ctx context.Context, id uuid.UUID) (*render.Document, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, quotation.CustomerID)
	if err != nil {
		return nil, err
	}
	return BuildQuotationDocument(quotation, customer), nil
}

func (s *Service) invoiceDocument(ctx context.Context, id uuid.UUID) (*render.Document, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	return BuildInvoiceDocument(invoice, customer), nil
}

// renderPDF runs the selected strategy. An empty strategy defaults to
// vector; capture is refused when no capturer was wired at startup.
func (s *Service) renderPDF(ctx context.Context, doc *render.Document, strategy Strategy) ([]byte, error) {
	if strategy == "" {
		strategy = StrategyVector
	}
	if !strategy.IsValid() {
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unknown render strategy: "+string(strategy))
	}

	switch strategy {
	case StrategyCapture:
		if s.capturer == nil {
			return nil, shared.NewDomainError("INVALID_STRATEGY", "Capture rendering is not available")
		}
		html, err := RenderHTML(doc, s.company)
		if err != nil {
			return nil, err
		}
		return s.capturer.Capture(ctx, &render.CaptureRequest{
			HTML:      html,
			MultiPage: true,
		})
	default:
		return s.composer.Compose(ctx, doc)
	}
}
