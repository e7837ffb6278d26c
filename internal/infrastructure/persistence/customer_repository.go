package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Ensure GormCustomerRepository implements crm.CustomerRepository
var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)

// GormCustomerRepository implements crm.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var customer crm.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var customer crm.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*crm.Customer, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var customer crm.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Customer, error) {
	var customers []crm.Customer
	query := r.db.WithContext(ctx).Model(&crm.Customer{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if err := applyFilter(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save inserts or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&crm.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&crm.Customer{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormServiceCategoryRepository implements crm.ServiceCategoryRepository
var _ crm.ServiceCategoryRepository = (*GormServiceCategoryRepository)(nil)

// GormServiceCategoryRepository implements crm.ServiceCategoryRepository
// using GORM
type GormServiceCategoryRepository struct {
	db *gorm.DB
}

// NewGormServiceCategoryRepository creates a new GormServiceCategoryRepository
func NewGormServiceCategoryRepository(db *gorm.DB) *GormServiceCategoryRepository {
	return &GormServiceCategoryRepository{db: db}
}

// FindByID finds a service category by its ID
func (r *GormServiceCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.ServiceCategory, error) {
	var category crm.ServiceCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a service category by its unique name
func (r *GormServiceCategoryRepository) FindByName(ctx context.Context, name string) (*crm.ServiceCategory, error) {
	var category crm.ServiceCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all service categories ordered by sort order
func (r *GormServiceCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.ServiceCategory, error) {
	var categories []crm.ServiceCategory
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Save inserts or updates a service category
func (r *GormServiceCategoryRepository) Save(ctx context.Context, category *crm.ServiceCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a service category by ID
func (r *GormServiceCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&crm.ServiceCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of service categories
func (r *GormServiceCategoryRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&crm.ServiceCategory{}).Count(&count).Error
	return count, err
}
