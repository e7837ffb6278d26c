package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/inventory"
)

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	SKU               string          `json:"sku" binding:"required,min=1,max=50"`
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	Unit              string          `json:"unit" binding:"max=20"`
	LowStockThreshold int             `json:"low_stock_threshold" binding:"min=0"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	InitialQuantity   int             `json:"initial_quantity" binding:"min=0"`
}

// UpdateItemRequest represents a request to update an item's details
type UpdateItemRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Unit              *string          `json:"unit" binding:"omitempty,max=20"`
	UnitCost          *decimal.Decimal `json:"unit_cost"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// StockMovementRequest represents a receive or consume operation
type StockMovementRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	LowStock          bool            `json:"low_stock"`
	SuggestedReorder  int             `json:"suggested_reorder"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DemandEntryResponse is one row of the reorder demand list
type DemandEntryResponse struct {
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	Unit             string `json:"unit"`
	QuantityOnHand   int    `json:"quantity_on_hand"`
	Threshold        int    `json:"threshold"`
	SuggestedReorder int    `json:"suggested_reorder"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		SKU:               i.SKU,
		Name:              i.Name,
		Unit:              i.Unit,
		QuantityOnHand:    i.QuantityOnHand,
		LowStockThreshold: i.LowStockThreshold,
		UnitCost:          i.UnitCost,
		LowStock:          i.IsLowStock(),
		SuggestedReorder:  i.SuggestedReorder(),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
