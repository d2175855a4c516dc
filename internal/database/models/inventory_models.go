package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID            string          `gorm:"primaryKey;size:36"`
	Name          string          `gorm:"size:255;not null"`
	Brand         *string         `gorm:"size:255"`
	Category      string          `gorm:"size:255;not null"`
	SKU           *string         `gorm:"column:sku;size:100"`
	Quantity      int64           `gorm:"not null"`
	MinStockLevel int64           `gorm:"not null;default:10"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock reports whether the item is at or below its restock threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStockLevel
}
