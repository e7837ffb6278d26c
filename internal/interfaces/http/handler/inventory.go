package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/tradeworks/backend/internal/application/inventory"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
)

// InventoryHandler handles inventory API endpoints
type InventoryHandler struct {
	BaseHandler
	itemService *inventoryapp.ItemService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(itemService *inventoryapp.ItemService) *InventoryHandler {
	return &InventoryHandler{itemService: itemService}
}

// InventoryRoutes creates the route group for inventory endpoints
func InventoryRoutes(h *InventoryHandler) *router.DomainGroup {
	group := router.NewDomainGroup("inventory", "/inventory/items")

	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/demand-list", h.DemandList)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.POST("/:id/receive", h.Receive)
	group.POST("/:id/consume", h.Consume)
	group.DELETE("/:id", h.Delete)

	return group
}

// Create registers a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByID retrieves an inventory item by ID
func (h *InventoryHandler) GetByID(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// List retrieves a paginated list of inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update updates an inventory item's details
func (h *InventoryHandler) Update(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Receive adds received stock to an item
func (h *InventoryHandler) Receive(c *gin.Context) {
	h.movement(c, h.itemService.Receive)
}

// Consume deducts stock used on a job
func (h *InventoryHandler) Consume(c *gin.Context) {
	h.movement(c, h.itemService.Consume)
}

// DemandList returns suggested reorder quantities for low stock items
func (h *InventoryHandler) DemandList(c *gin.Context) {
	entries, err := h.itemService.DemandList(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// Delete deletes an inventory item
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *InventoryHandler) movement(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, req inventoryapp.StockMovementRequest) (*inventoryapp.ItemResponse, error)) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req inventoryapp.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := fn(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}
