package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog entry for a sellable item. BaselineQty is the
// externally maintained source-of-truth quantity the reconciler computes from.
type Product struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	Name        string       `gorm:"column:name;not null"`
	Category    string       `gorm:"column:category;not null;default:''"`
	Branch      string       `gorm:"column:branch;not null;default:''"`
	PriceCents  int          `gorm:"column:price_cents;not null;default:0"`
	BaselineQty int          `gorm:"column:baseline_qty;not null;default:0"`
	IsActive    bool         `gorm:"column:is_active;not null;default:true"`
	Ledger      *StockLedger `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
