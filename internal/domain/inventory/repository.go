package inventory

import (
	"context"

	"github.com/tradeworks/backend/internal/domain/shared"
)

// ItemRepository defines persistence operations for inventory items
type ItemRepository interface {
	shared.Repository[Item]
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	FindLowStock(ctx context.Context) ([]Item, error)
}
