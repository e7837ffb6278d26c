package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/inventory"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier publishes operator notifications about stock events
type Notifier interface {
	Publish(ctx context.Context, severity notification.Severity, title, message string) error
}

// ItemService handles inventory item and stock operations
type ItemService struct {
	itemRepo inventory.ItemRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, notifier Notifier, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// Create creates a new inventory item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	existing, err := s.itemRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this SKU already exists")
	}

	item, err := inventory.NewItem(req.SKU, req.Name, req.Unit, req.LowStockThreshold, req.UnitCost)
	if err != nil {
		return nil, err
	}
	if req.InitialQuantity > 0 {
		if err := item.Receive(req.InitialQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "sku"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, total, nil
}

// Update updates an item's descriptive fields
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := item.Name
	unit := item.Unit
	unitCost := item.UnitCost
	if req.Name != nil {
		name = *req.Name
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if req.UnitCost != nil {
		unitCost = *req.UnitCost
	}
	if err := item.Update(name, unit, unitCost); err != nil {
		return nil, err
	}
	if req.LowStockThreshold != nil {
		if err := item.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Receive adds stock to an item
func (s *ItemService) Receive(ctx context.Context, id uuid.UUID, req StockMovementRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Receive(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Consume removes stock used on a job. Crossing the low-stock threshold
// raises a warning notification.
func (s *ItemService) Consume(ctx context.Context, id uuid.UUID, req StockMovementRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasLow := item.IsLowStock()
	if err := item.Consume(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	if !wasLow && item.IsLowStock() {
		if err := s.notifier.Publish(ctx, notification.SeverityWarning,
			"Low stock",
			fmt.Sprintf("%s (%s) is down to %d %s, reorder %d", item.Name, item.SKU, item.QuantityOnHand, item.Unit, item.SuggestedReorder())); err != nil {
			s.logger.Warn("failed to publish low stock notification", zap.Error(err), zap.String("sku", item.SKU))
		}
	}

	response := ToItemResponse(item)
	return &response, nil
}

// DemandList returns the reorder list of low-stock items
func (s *ItemService) DemandList(ctx context.Context) ([]DemandEntryResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	entries := inventory.BuildDemandList(items)
	responses := make([]DemandEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = DemandEntryResponse{
			SKU:              entry.SKU,
			Name:             entry.Name,
			Unit:             entry.Unit,
			QuantityOnHand:   entry.QuantityOnHand,
			Threshold:        entry.Threshold,
			SuggestedReorder: entry.SuggestedReorder,
		}
	}
	return responses, nil
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}
