package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Ensure implementations satisfy the billing repository interfaces
var (
	_ billing.QuotationRepository      = (*GormQuotationRepository)(nil)
	_ billing.InvoiceRepository        = (*GormInvoiceRepository)(nil)
	_ billing.PaymentReceiptRepository = (*GormPaymentReceiptRepository)(nil)
)

// GormQuotationRepository implements billing.QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation with its items
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	var quotation billing.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&quotation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

// FindByNumber finds a quotation by its reference number
func (r *GormQuotationRepository) FindByNumber(ctx context.Context, number string) (*billing.Quotation, error) {
	var quotation billing.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("number = ?", number).
		First(&quotation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

// FindAll finds all quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Quotation, error) {
	var quotations []billing.Quotation
	query := r.db.WithContext(ctx).Model(&billing.Quotation{}).Preload("Items")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	if err := applyFilter(query, filter).Find(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}

// FindByCustomer finds quotations for a customer
func (r *GormQuotationRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	var quotations []billing.Quotation
	query := r.db.WithContext(ctx).
		Model(&billing.Quotation{}).
		Preload("Items").
		Where("customer_id = ?", customerID)
	if err := applyFilter(query, filter).Find(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}

// FindByStatus finds quotations in a lifecycle status
func (r *GormQuotationRepository) FindByStatus(ctx context.Context, status billing.QuotationStatus, filter shared.Filter) ([]billing.Quotation, error) {
	var quotations []billing.Quotation
	query := r.db.WithContext(ctx).
		Model(&billing.Quotation{}).
		Preload("Items").
		Where("status = ?", status)
	if err := applyFilter(query, filter).Find(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}

// Save inserts or updates a quotation and its items
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quotation).Error; err != nil {
			return err
		}
		// Replace items so removed rows do not linger
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&billing.QuotationItem{}).Error; err != nil {
			return err
		}
		if len(quotation.Items) == 0 {
			return nil
		}
		return tx.Create(&quotation.Items).Error
	})
}

// Delete removes a quotation and its items
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&billing.QuotationItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Quotation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of quotations
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&billing.Quotation{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its items and photos
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its reference number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("number = ?", number).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).Model(&billing.Invoice{}).Preload("Items")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByCustomer finds invoices for a customer
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Preload("Items").
		Where("customer_id = ?", customerID)
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus finds invoices in a payment status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Preload("Items").
		Where("status = ?", status)
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save inserts or updates an invoice with its items and photos
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(invoice).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		if len(invoice.Items) > 0 {
			if err := tx.Create(&invoice.Items).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&billing.WorkPhoto{}).Error; err != nil {
			return err
		}
		if len(invoice.Photos) > 0 {
			if err := tx.Create(&invoice.Photos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an invoice with its items and photos
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.WorkPhoto{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of invoices
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&billing.Invoice{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// GormPaymentReceiptRepository implements billing.PaymentReceiptRepository
// using GORM
type GormPaymentReceiptRepository struct {
	db *gorm.DB
}

// NewGormPaymentReceiptRepository creates a new GormPaymentReceiptRepository
func NewGormPaymentReceiptRepository(db *gorm.DB) *GormPaymentReceiptRepository {
	return &GormPaymentReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormPaymentReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentReceipt, error) {
	var receipt billing.PaymentReceipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindAll finds all receipts matching the filter
func (r *GormPaymentReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PaymentReceipt, error) {
	var receipts []billing.PaymentReceipt
	query := r.db.WithContext(ctx).Model(&billing.PaymentReceipt{})
	if err := applyFilter(query, filter).Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindByInvoice finds all receipts recorded against an invoice
func (r *GormPaymentReceiptRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.PaymentReceipt, error) {
	var receipts []billing.PaymentReceipt
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("received_at ASC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save inserts or updates a receipt
func (r *GormPaymentReceiptRepository) Save(ctx context.Context, receipt *billing.PaymentReceipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

// Delete removes a receipt by ID
func (r *GormPaymentReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.PaymentReceipt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of receipts
func (r *GormPaymentReceiptRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&billing.PaymentReceipt{}).Count(&count).Error
	return count, err
}
