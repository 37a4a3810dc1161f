package stock

import (
	"time"

	"github.com/google/uuid"
)

// StockRow is one product's evaluated stock position as served by the API.
type StockRow struct {
	ProductID        uuid.UUID  `json:"productId"`
	ProductName      string     `json:"productName"`
	HasStockEntry    bool       `json:"hasStockEntry"`
	CurrentQuantity  int        `json:"currentQuantity"`
	DisplayQuantity  int        `json:"displayQuantity"`
	ReservedQuantity int        `json:"reservedQuantity"`
	EffectiveDisplay int        `json:"effectiveDisplay"`
	NeedsSync        bool       `json:"needsSync"`
	Difference       int        `json:"difference"`
	LastSyncAt       *time.Time `json:"lastSyncAt"`
}
