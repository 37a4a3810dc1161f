package cron

import (
	"context"
	"fmt"

	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

// StockSyncJob runs the bulk reconciliation pass on the worker cadence.
// This is the periodic caller the ledger relies on to repair drift left by
// failed incremental updates.
type StockSyncJob struct {
	reconciler *stock.Reconciler
	logg       *logger.Logger
}

// NewStockSyncJob builds the reconcile job.
func NewStockSyncJob(reconciler *stock.Reconciler, logg *logger.Logger) (*StockSyncJob, error) {
	if reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &StockSyncJob{reconciler: reconciler, logg: logg}, nil
}

// Name implements Job.
func (j *StockSyncJob) Name() string { return "stock_sync" }

// Run implements Job. Per-product failures surface in the summary, not the
// returned error; the job only fails when the pass could not run at all.
func (j *StockSyncJob) Run(ctx context.Context) error {
	summary, err := j.reconciler.SyncAllStock(ctx)
	if err != nil {
		return fmt.Errorf("stock sync: %w", err)
	}

	ctx = j.logg.WithFields(ctx, map[string]any{
		"total":   summary.Total,
		"updated": summary.Updated,
		"failed":  len(summary.Errors),
	})
	j.logg.Info(ctx, "stock sync pass recorded")
	return nil
}
