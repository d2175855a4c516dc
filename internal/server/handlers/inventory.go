package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"glamour-inventory/internal/database/models"
	"glamour-inventory/internal/inventory"
)

type InventoryHTTPHandler struct {
	store *inventory.Store
}

func NewInventoryHTTPHandler(store *inventory.Store) *InventoryHTTPHandler {
	return &InventoryHTTPHandler{
		store: store,
	}
}

// CreateItemRequest uses pointer fields so an absent value can be told apart
// from an explicit zero.
type CreateItemRequest struct {
	Name          string   `json:"name"`
	Brand         *string  `json:"brand"`
	Category      string   `json:"category"`
	SKU           *string  `json:"sku"`
	Quantity      *int64   `json:"quantity"`
	MinStockLevel *int64   `json:"min_stock_level"`
	UnitPrice     *float64 `json:"unit_price"`
}

type UpdateItemRequest struct {
	Name          *string  `json:"name"`
	Brand         *string  `json:"brand"`
	Category      *string  `json:"category"`
	SKU           *string  `json:"sku"`
	Quantity      *int64   `json:"quantity"`
	MinStockLevel *int64   `json:"min_stock_level"`
	UnitPrice     *float64 `json:"unit_price"`
}

type ItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         *string   `json:"brand"`
	Category      string    `json:"category"`
	SKU           *string   `json:"sku"`
	Quantity      int64     `json:"quantity"`
	MinStockLevel int64     `json:"min_stock_level"`
	UnitPrice     float64   `json:"unit_price"`
	TotalValue    float64   `json:"total_value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StatsResponse struct {
	TotalItems    int64   `json:"total_items"`
	TotalUnits    int64   `json:"total_units"`
	TotalValue    float64 `json:"total_value"`
	LowStockItems int64   `json:"low_stock_items"`
	Categories    int64   `json:"categories"`
}

// Helper functions
func (h *InventoryHTTPHandler) error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": message,
	})
}

func (h *InventoryHTTPHandler) storeError(c *gin.Context, err error) {
	var verr *inventory.ValidationError
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		h.error(c, http.StatusNotFound, "Item not found")
	case errors.As(err, &verr):
		h.error(c, http.StatusBadRequest, verr.Error())
	default:
		h.error(c, http.StatusInternalServerError, "database error")
	}
}

func itemToResponse(item models.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Brand:         item.Brand,
		Category:      item.Category,
		SKU:           item.SKU,
		Quantity:      item.Quantity,
		MinStockLevel: item.MinStockLevel,
		UnitPrice:     item.UnitPrice.InexactFloat64(),
		TotalValue:    item.TotalValue.InexactFloat64(),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func itemsToResponse(items []models.InventoryItem) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = itemToResponse(item)
	}
	return responses
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// Inventory endpoints

func (h *InventoryHTTPHandler) ListItems(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemsToResponse(items))
}

func (h *InventoryHTTPHandler) GetItem(c *gin.Context) {
	item, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *InventoryHTTPHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.store.Insert(c.Request.Context(), inventory.NewItem{
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		SKU:           req.SKU,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		UnitPrice:     decimalPtr(req.UnitPrice),
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(*item))
}

func (h *InventoryHTTPHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.store.Update(c.Request.Context(), c.Param("id"), inventory.ItemPatch{
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		SKU:           req.SKU,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		UnitPrice:     decimalPtr(req.UnitPrice),
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(*item))
}

func (h *InventoryHTTPHandler) DeleteItem(c *gin.Context) {
	item, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Item deleted successfully",
		"deletedItem": itemToResponse(*item),
	})
}

func (h *InventoryHTTPHandler) ListLowStock(c *gin.Context) {
	items, err := h.store.LowStock(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemsToResponse(items))
}

func (h *InventoryHTTPHandler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		TotalItems:    stats.TotalItems,
		TotalUnits:    stats.TotalUnits,
		TotalValue:    stats.TotalValue.InexactFloat64(),
		LowStockItems: stats.LowStockItems,
		Categories:    stats.Categories,
	})
}
