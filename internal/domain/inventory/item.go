package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// Item is a stocked material or part used on jobs.
// It is the aggregate root for inventory operations.
type Item struct {
	shared.BaseAggregateRoot
	SKU               string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Unit              string          `gorm:"type:varchar(20);not null;default:'unit'"`
	QuantityOnHand    int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item
func NewItem(sku, name, unit string, lowStockThreshold int, unitCost decimal.Decimal) (*Item, error) {
	sku = strings.TrimSpace(strings.ToUpper(sku))
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unit == "" {
		unit = "unit"
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Unit:              unit,
		LowStockThreshold: lowStockThreshold,
		UnitCost:          unitCost.Round(2),
	}, nil
}

// Update changes the item's descriptive fields
func (i *Item) Update(name, unit string, unitCost decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unit == "" {
		unit = "unit"
	}

	i.Name = name
	i.Unit = unit
	i.UnitCost = unitCost.Round(2)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetLowStockThreshold changes the reorder threshold
func (i *Item) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.UpdatedAt = time.Now()
	return nil
}

// Receive adds stock from a purchase or return
func (i *Item) Receive(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	i.QuantityOnHand += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Consume removes stock used on a job. Stock cannot go negative.
func (i *Item) Consume(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}
	if quantity > i.QuantityOnHand {
		return shared.ErrInsufficientStock
	}

	i.QuantityOnHand -= quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsLowStock reports whether the item is at or below its threshold
func (i *Item) IsLowStock() bool {
	return i.QuantityOnHand <= i.LowStockThreshold
}

// SuggestedReorder returns the quantity to order to restore twice the
// threshold on hand. Zero when the item is not low on stock.
func (i *Item) SuggestedReorder() int {
	if !i.IsLowStock() {
		return 0
	}
	qty := i.LowStockThreshold*2 - i.QuantityOnHand
	if qty < 0 {
		return 0
	}
	return qty
}

// DemandEntry is one row of the reorder demand list
type DemandEntry struct {
	SKU              string
	Name             string
	Unit             string
	QuantityOnHand   int
	Threshold        int
	SuggestedReorder int
}

// BuildDemandList returns the low-stock items as a reorder list,
// sorted by the item order given
func BuildDemandList(items []Item) []DemandEntry {
	entries := make([]DemandEntry, 0)
	for _, item := range items {
		if !item.IsLowStock() {
			continue
		}
		entries = append(entries, DemandEntry{
			SKU:              item.SKU,
			Name:             item.Name,
			Unit:             item.Unit,
			QuantityOnHand:   item.QuantityOnHand,
			Threshold:        item.LowStockThreshold,
			SuggestedReorder: item.SuggestedReorder(),
		})
	}
	return entries
}
