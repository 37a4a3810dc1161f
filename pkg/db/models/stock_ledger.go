package models

import (
	"time"

	"github.com/google/uuid"
)

// StockLedger tracks the three stock figures kept per product: the
// authoritative on-hand count, the externally displayed count, and the
// quantity reserved by orders that are not yet approved.
type StockLedger struct {
	ProductID          uuid.UUID  `gorm:"column:product_id;type:uuid;primaryKey"`
	CurrentQty         int        `gorm:"column:current_qty;not null;default:0"`
	DisplayQty         int        `gorm:"column:display_qty;not null;default:0"`
	ReservedQty        int        `gorm:"column:reserved_qty;not null;default:0"`
	LastSyncAt         *time.Time `gorm:"column:last_sync_at"`
	InventoryUpdatedAt *time.Time `gorm:"column:inventory_updated_at"`
	DisplaySyncedAt    *time.Time `gorm:"column:display_synced_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
