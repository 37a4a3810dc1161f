package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luminaretail/orders-backend/pkg/db/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateNilLedger(t *testing.T) {
	status := Evaluate(nil)

	assert.False(t, status.HasStockEntry)
	assert.False(t, status.NeedsSync)
	assert.Zero(t, status.Difference)
}

func TestEvaluate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		ledger         models.StockLedger
		wantNeedsSync  bool
		wantDifference int
		wantEffective  int
	}{
		{
			name: "inventory write newer than display sync",
			ledger: models.StockLedger{
				CurrentQty:         90,
				DisplayQty:         80,
				ReservedQty:        5,
				InventoryUpdatedAt: timePtr(base.Add(time.Hour)),
				DisplaySyncedAt:    timePtr(base),
			},
			wantNeedsSync:  true,
			wantDifference: 5,
			wantEffective:  85,
		},
		{
			name: "inventory written but never display synced",
			ledger: models.StockLedger{
				CurrentQty:         50,
				DisplayQty:         50,
				InventoryUpdatedAt: timePtr(base),
			},
			wantNeedsSync:  true,
			wantDifference: 0,
			wantEffective:  50,
		},
		{
			name: "display sync caught up with inventory write",
			ledger: models.StockLedger{
				CurrentQty:         100,
				DisplayQty:         60,
				InventoryUpdatedAt: timePtr(base),
				DisplaySyncedAt:    timePtr(base),
			},
			wantNeedsSync:  false,
			wantDifference: 0,
			wantEffective:  60,
		},
		{
			name: "no inventory timestamps and display lagging",
			ledger: models.StockLedger{
				CurrentQty:  100,
				DisplayQty:  85,
				ReservedQty: 5,
			},
			wantNeedsSync:  true,
			wantDifference: 10,
			wantEffective:  90,
		},
		{
			name: "no inventory timestamps and display caught up",
			ledger: models.StockLedger{
				CurrentQty:  100,
				DisplayQty:  95,
				ReservedQty: 5,
			},
			wantNeedsSync:  false,
			wantDifference: 0,
			wantEffective:  100,
		},
		{
			name: "reserved counts toward effective display",
			ledger: models.StockLedger{
				CurrentQty:  10,
				DisplayQty:  2,
				ReservedQty: 8,
			},
			wantNeedsSync:  false,
			wantDifference: 0,
			wantEffective:  10,
		},
		{
			name: "difference clamps at zero when display overshoots",
			ledger: models.StockLedger{
				CurrentQty:         5,
				DisplayQty:         20,
				InventoryUpdatedAt: timePtr(base.Add(time.Minute)),
				DisplaySyncedAt:    timePtr(base),
			},
			wantNeedsSync:  true,
			wantDifference: 0,
			wantEffective:  20,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := Evaluate(&tc.ledger)

			assert.True(t, status.HasStockEntry)
			assert.Equal(t, tc.wantNeedsSync, status.NeedsSync)
			assert.Equal(t, tc.wantDifference, status.Difference)
			assert.Equal(t, tc.wantEffective, status.EffectiveDisplay)
			assert.Equal(t, tc.ledger.CurrentQty, status.CurrentQty)
		})
	}
}
