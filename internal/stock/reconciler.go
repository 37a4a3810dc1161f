package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/logger"
	"github.com/luminaretail/orders-backend/pkg/metrics"
)

// ProductSyncResult is the per-product outcome of one reconciliation pass.
type ProductSyncResult struct {
	ProductID  uuid.UUID `json:"productId"`
	Baseline   int       `json:"baseline"`
	Consumed   int       `json:"consumed"`
	Reserved   int       `json:"reserved"`
	CurrentQty int       `json:"currentQuantity"`
	DisplayQty int       `json:"displayQuantity"`
	Changed    bool      `json:"changed"`
}

// SyncError records a product the pass could not reconcile.
type SyncError struct {
	ProductID uuid.UUID `json:"productId"`
	Message   string    `json:"message"`
}

// SyncSummary reports the outcome of a full reconciliation pass.
type SyncSummary struct {
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Total      int                 `json:"total"`
	Updated    int                 `json:"updated"`
	Unchanged  int                 `json:"unchanged"`
	Errors     []SyncError         `json:"errors"`
	Results    []ProductSyncResult `json:"results"`
}

// Reconciler recomputes every ledger row from full order history. It is the
// recovery path for any drift the incremental mutator leaves behind.
type Reconciler struct {
	repo     Repository
	orders   OrderSource
	baseline BaselineSource
	logg     *logger.Logger
	metrics  *metrics.StockMetrics
	now      func() time.Time
}

// NewReconciler wires a reconciler. Metrics may be nil outside the worker.
func NewReconciler(repo Repository, orders OrderSource, baseline BaselineSource, logg *logger.Logger, stockMetrics *metrics.StockMetrics) (*Reconciler, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order source required")
	}
	if baseline == nil {
		return nil, fmt.Errorf("baseline source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Reconciler{
		repo:     repo,
		orders:   orders,
		baseline: baseline,
		logg:     logg,
		metrics:  stockMetrics,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// SyncAllStock recomputes expected and display quantities for every product
// with a baseline. Per-product failures land in the summary and the pass
// continues; only a failure to load the inputs aborts the whole pass.
func (r *Reconciler) SyncAllStock(ctx context.Context) (*SyncSummary, error) {
	startedAt := r.now()

	baselines, err := r.baseline.Baselines(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading baselines: %w", err)
	}
	consumed, err := r.orders.ConsumedQuantities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading consumed quantities: %w", err)
	}
	reserved, err := r.orders.ReservedQuantities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reserved quantities: %w", err)
	}

	summary := &SyncSummary{StartedAt: startedAt, Total: len(baselines)}
	var productErrs error

	for productID, baseline := range baselines {
		result, err := r.syncProduct(ctx, productID, baseline, consumed[productID], reserved[productID])
		if err != nil {
			summary.Errors = append(summary.Errors, SyncError{ProductID: productID, Message: err.Error()})
			productErrs = multierr.Append(productErrs, fmt.Errorf("product %s: %w", productID, err))
			continue
		}
		if result.Changed {
			summary.Updated++
		} else {
			summary.Unchanged++
		}
		summary.Results = append(summary.Results, *result)
	}

	summary.FinishedAt = r.now()

	ctx = r.logg.WithFields(ctx, map[string]any{
		"total":     summary.Total,
		"updated":   summary.Updated,
		"unchanged": summary.Unchanged,
		"failed":    len(summary.Errors),
	})
	if productErrs != nil {
		r.logg.Error(ctx, "stock sync finished with product failures", productErrs)
	} else {
		r.logg.Info(ctx, "stock sync finished")
	}

	r.metrics.ObservePass(summary.Updated, summary.Unchanged, len(summary.Errors), summary.FinishedAt.Unix())
	return summary, nil
}

func (r *Reconciler) syncProduct(ctx context.Context, productID uuid.UUID, baseline, consumedQty, reservedQty int) (*ProductSyncResult, error) {
	expected := baseline - consumedQty
	if expected < 0 {
		expected = 0
	}
	display := expected - reservedQty
	if display < 0 {
		display = 0
	}

	changed := true
	existing, err := r.repo.Get(ctx, productID)
	switch {
	case err == nil:
		changed = existing.CurrentQty != expected ||
			existing.DisplayQty != display ||
			existing.ReservedQty != reservedQty
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first sync for this product
	default:
		return nil, err
	}

	syncedAt := r.now()
	updates := map[string]any{
		"current_qty":          expected,
		"display_qty":          display,
		"reserved_qty":         reservedQty,
		"last_sync_at":         syncedAt,
		"display_synced_at":    syncedAt,
		"inventory_updated_at": syncedAt,
		"updated_at":           syncedAt,
	}
	if err := r.repo.Upsert(ctx, productID, updates); err != nil {
		return nil, err
	}

	return &ProductSyncResult{
		ProductID:  productID,
		Baseline:   baseline,
		Consumed:   consumedQty,
		Reserved:   reservedQty,
		CurrentQty: expected,
		DisplayQty: display,
		Changed:    changed,
	}, nil
}
