package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"glamour-inventory/internal/database/models"
)

const (
	defaultMinStockLevel = 10

	STATS_CACHE_KEY = "inventory:stats"
	STATS_CACHE_TTL = 5 * time.Minute
)

// NewItem carries the caller-supplied fields for an insert. Pointer fields
// distinguish absent from zero; total_value is never accepted from callers.
type NewItem struct {
	Name          string
	Brand         *string
	Category      string
	SKU           *string
	Quantity      *int64
	MinStockLevel *int64
	UnitPrice     *decimal.Decimal
}

// ItemPatch carries a partial update; nil fields keep their stored value.
type ItemPatch struct {
	Name          *string
	Brand         *string
	Category      *string
	SKU           *string
	Quantity      *int64
	MinStockLevel *int64
	UnitPrice     *decimal.Decimal
}

type Stats struct {
	TotalItems    int64
	TotalUnits    int64
	TotalValue    decimal.Decimal
	LowStockItems int64
	Categories    int64
}

// Store is the durable item collection. The Redis client is optional and
// only backs the stats cache; list and get always hit the database.
type Store struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, redis: rdb}
}

// List returns all items, most recently created first.
func (s *Store) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) Insert(ctx context.Context, fields NewItem) (*models.InventoryItem, error) {
	if fields.UnitPrice == nil {
		return nil, validationErr("unit_price", "is required")
	}

	item := models.InventoryItem{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(fields.Name),
		Brand:         trimPtr(fields.Brand),
		Category:      strings.TrimSpace(fields.Category),
		SKU:           trimPtr(fields.SKU),
		MinStockLevel: defaultMinStockLevel,
		UnitPrice:     *fields.UnitPrice,
	}
	if fields.Quantity != nil {
		item.Quantity = *fields.Quantity
	}
	if fields.MinStockLevel != nil {
		item.MinStockLevel = *fields.MinStockLevel
	}

	if err := validate(&item); err != nil {
		return nil, err
	}
	recompute(&item)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	s.invalidateStatsCache(ctx)
	return &item, nil
}

func (s *Store) Update(ctx context.Context, id string, patch ItemPatch) (*models.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Brand != nil {
		item.Brand = trimPtr(patch.Brand)
	}
	if patch.Category != nil {
		item.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.SKU != nil {
		item.SKU = trimPtr(patch.SKU)
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.MinStockLevel != nil {
		item.MinStockLevel = *patch.MinStockLevel
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}

	if err := validate(item); err != nil {
		return nil, err
	}
	recompute(item)

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	s.invalidateStatsCache(ctx)
	return item, nil
}

// Delete removes the item and returns the removed record. A second delete
// of the same id reports ErrItemNotFound.
func (s *Store) Delete(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	s.invalidateStatsCache(ctx)
	return item, nil
}

// LowStock returns items at or below their min_stock_level, newest first.
func (s *Store) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).
		Where("quantity <= min_stock_level").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Stats aggregates the dashboard numbers over the whole collection. Results
// are cached in Redis for a short TTL and invalidated on every write.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, STATS_CACHE_KEY).Result(); err == nil {
			var stats Stats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		TotalItems: int64(len(items)),
		TotalValue: decimal.Zero,
	}
	categories := make(map[string]struct{})
	for _, item := range items {
		stats.TotalUnits += item.Quantity
		stats.TotalValue = stats.TotalValue.Add(item.TotalValue)
		if item.IsLowStock() {
			stats.LowStockItems++
		}
		categories[item.Category] = struct{}{}
	}
	stats.Categories = int64(len(categories))

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, STATS_CACHE_KEY, payload, STATS_CACHE_TTL).Err()
		}
	}
	return &stats, nil
}

func (s *Store) invalidateStatsCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, STATS_CACHE_KEY).Err()
}

// recompute derives total_value from the current quantity and unit price.
// It runs at the top of every write path so the stored value is never stale.
func recompute(item *models.InventoryItem) {
	item.TotalValue = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
}

func validate(item *models.InventoryItem) error {
	if item.Name == "" {
		return validationErr("name", "is required")
	}
	if item.Category == "" {
		return validationErr("category", "is required")
	}
	if item.Quantity < 0 {
		return validationErr("quantity", "must not be negative")
	}
	if item.MinStockLevel < 0 {
		return validationErr("min_stock_level", "must not be negative")
	}
	if item.UnitPrice.IsNegative() {
		return validationErr("unit_price", "must not be negative")
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
