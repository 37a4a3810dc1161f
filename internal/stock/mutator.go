package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/pkg/db/models"
	apperrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

// ItemResult reports the outcome of one order item's ledger adjustment.
// Items fail independently so one bad product never blocks the others.
type ItemResult struct {
	ProductID uuid.UUID
	Qty       int
	Success   bool
	Err       error
}

// Mutator applies and reverses the ledger effect of a single order.
type Mutator struct {
	repo   Repository
	orders OrderSource
	logg   *logger.Logger
	now    func() time.Time
}

// NewMutator wires a stock mutator with its dependencies.
func NewMutator(repo Repository, orders OrderSource, logg *logger.Logger) (*Mutator, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Mutator{repo: repo, orders: orders, logg: logg, now: func() time.Time { return time.Now().UTC() }}, nil
}

// ApplyOrderStock deducts every item of the order from current_qty. The
// order's stock_applied_at marker must be unset; a re-delivered approval is
// rejected with a state conflict instead of deducting twice.
func (m *Mutator) ApplyOrderStock(ctx context.Context, orderID uuid.UUID) ([]ItemResult, error) {
	order, err := m.orders.FindOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StockAppliedAt != nil {
		return nil, apperrors.New(apperrors.CodeStateConflict, "order stock already applied").
			WithDetails(map[string]any{"order_id": orderID, "applied_at": order.StockAppliedAt})
	}

	appliedAt := m.now()
	results := m.adjustItems(ctx, order.Items, -1, appliedAt)

	if err := m.orders.SetStockApplied(ctx, orderID, &appliedAt); err != nil {
		return results, err
	}
	return results, nil
}

// ReverseOrderStock restores every item of the order to current_qty and
// clears the applied marker. Reversing an order whose stock was never
// applied is a state conflict.
func (m *Mutator) ReverseOrderStock(ctx context.Context, orderID uuid.UUID) ([]ItemResult, error) {
	order, err := m.orders.FindOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StockAppliedAt == nil {
		return nil, apperrors.New(apperrors.CodeStateConflict, "order stock was never applied").
			WithDetails(map[string]any{"order_id": orderID})
	}

	appliedAt := m.now()
	results := m.adjustItems(ctx, order.Items, 1, appliedAt)

	if err := m.orders.SetStockApplied(ctx, orderID, nil); err != nil {
		return results, err
	}
	return results, nil
}

func (m *Mutator) adjustItems(ctx context.Context, items []models.OrderItem, direction int, appliedAt time.Time) []ItemResult {
	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		result := ItemResult{ProductID: item.ProductID, Qty: item.Qty}
		if err := m.repo.ApplyDelta(ctx, item.ProductID, direction*item.Qty, appliedAt); err != nil {
			result.Err = err
			m.logg.Error(m.logg.WithField(ctx, "product_id", item.ProductID.String()),
				"stock adjustment failed", err)
		} else {
			result.Success = true
		}
		results = append(results, result)
	}
	return results
}

// FailedItems filters the results down to the items whose adjustment failed.
func FailedItems(results []ItemResult) []ItemResult {
	var failed []ItemResult
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
