package stock

import (
	"time"

	"github.com/luminaretail/orders-backend/pkg/db/models"
)

// Status is the read-side view of one product's stock position. An order in
// pending still occupies display inventory, so the shopfront-visible figure
// is display plus reserved.
type Status struct {
	HasStockEntry    bool       `json:"hasStockEntry"`
	CurrentQty       int        `json:"currentQuantity"`
	DisplayQty       int        `json:"displayQuantity"`
	ReservedQty      int        `json:"reservedQuantity"`
	EffectiveDisplay int        `json:"effectiveDisplay"`
	NeedsSync        bool       `json:"needsSync"`
	Difference       int        `json:"difference"`
	LastSyncAt       *time.Time `json:"lastSyncAt"`
}

// Evaluate derives the sync state for a ledger row. It never mutates; a nil
// ledger means the product has no stock entry yet.
func Evaluate(ledger *models.StockLedger) Status {
	if ledger == nil {
		return Status{}
	}

	effectiveDisplay := ledger.DisplayQty + ledger.ReservedQty

	hasNewerInventoryWrite := ledger.InventoryUpdatedAt != nil &&
		(ledger.DisplaySyncedAt == nil || ledger.InventoryUpdatedAt.After(*ledger.DisplaySyncedAt))

	displayLagging := ledger.CurrentQty > effectiveDisplay

	needsSync := hasNewerInventoryWrite ||
		(ledger.InventoryUpdatedAt == nil && displayLagging)

	difference := 0
	if needsSync && ledger.CurrentQty > effectiveDisplay {
		difference = ledger.CurrentQty - effectiveDisplay
	}

	return Status{
		HasStockEntry:    true,
		CurrentQty:       ledger.CurrentQty,
		DisplayQty:       ledger.DisplayQty,
		ReservedQty:      ledger.ReservedQty,
		EffectiveDisplay: effectiveDisplay,
		NeedsSync:        needsSync,
		Difference:       difference,
		LastSyncAt:       ledger.LastSyncAt,
	}
}
