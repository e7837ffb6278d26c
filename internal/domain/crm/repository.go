package crm

import (
	"context"

	"github.com/tradeworks/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}

// ServiceCategoryRepository defines persistence operations for service categories
type ServiceCategoryRepository interface {
	shared.Repository[ServiceCategory]
	FindByName(ctx context.Context, name string) (*ServiceCategory, error)
}
