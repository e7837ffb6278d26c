package crm

import (
	"strings"
	"time"

	"github.com/tradeworks/backend/internal/domain/shared"
)

// ServiceCategory represents a category of work offered by the business
// (Plumbing, Tiling, Electrical, ...). Line items on quotations and
// invoices reference categories by name.
type ServiceCategory struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// NewServiceCategory creates a new service category
func NewServiceCategory(name, description string) (*ServiceCategory, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &ServiceCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the category's name and description
func (s *ServiceCategory) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order
func (s *ServiceCategory) SetSortOrder(order int) {
	s.SortOrder = order
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
