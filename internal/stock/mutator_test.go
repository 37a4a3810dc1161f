package stock

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/enums"
	apperrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestMutator(t *testing.T, db *gorm.DB) *Mutator {
	t.Helper()
	mutator, err := NewMutator(NewRepository(db), NewOrderSource(db), testLogger())
	require.NoError(t, err)
	return mutator
}

func TestApplyThenReverseRoundTrip(t *testing.T) {
	db := setupStockTestDB(t)
	mutator := newTestMutator(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	lamp := seedProduct(t, db, "Aurora Lamp", 100)
	require.NoError(t, repo.Upsert(ctx, lamp.ID, map[string]any{"current_qty": 100}))
	order := seedOrder(t, db, enums.OrderStatusPending, map[uuid.UUID]int{lamp.ID: 10})

	results, err := mutator.ApplyOrderStock(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	ledger, err := repo.Get(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, ledger.CurrentQty)
	assert.NotNil(t, ledger.InventoryUpdatedAt)

	results, err = mutator.ReverseOrderStock(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	ledger, err = repo.Get(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, ledger.CurrentQty)
}

func TestApplyFirstEverDeductsFromBaseline(t *testing.T) {
	db := setupStockTestDB(t)
	mutator := newTestMutator(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	// no ledger row yet; the first apply seeds it from the catalog
	lamp := seedProduct(t, db, "Aurora Lamp", 100)
	order := seedOrder(t, db, enums.OrderStatusPending, map[uuid.UUID]int{lamp.ID: 10})

	results, err := mutator.ApplyOrderStock(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	ledger, err := repo.Get(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, ledger.CurrentQty)
	assert.Equal(t, 100, ledger.DisplayQty)
}

func TestApplyTwiceIsRejected(t *testing.T) {
	db := setupStockTestDB(t)
	mutator := newTestMutator(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	lamp := seedProduct(t, db, "Aurora Lamp", 100)
	require.NoError(t, repo.Upsert(ctx, lamp.ID, map[string]any{"current_qty": 100}))
	order := seedOrder(t, db, enums.OrderStatusPending, map[uuid.UUID]int{lamp.ID: 10})

	_, err := mutator.ApplyOrderStock(ctx, order.ID)
	require.NoError(t, err)

	// re-delivered approval must not deduct again
	_, err = mutator.ApplyOrderStock(ctx, order.ID)
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())

	ledger, err := repo.Get(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, ledger.CurrentQty)
}

func TestReverseWithoutApplyIsRejected(t *testing.T) {
	db := setupStockTestDB(t)
	mutator := newTestMutator(t, db)
	ctx := context.Background()

	lamp := seedProduct(t, db, "Aurora Lamp", 100)
	order := seedOrder(t, db, enums.OrderStatusPending, map[uuid.UUID]int{lamp.ID: 10})

	_, err := mutator.ReverseOrderStock(ctx, order.ID)
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())
}

func TestApplyUnknownOrder(t *testing.T) {
	db := setupStockTestDB(t)
	mutator := newTestMutator(t, db)

	_, err := mutator.ApplyOrderStock(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

type flakyRepo struct {
	Repository
	failFor uuid.UUID
}

func (f *flakyRepo) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int, appliedAt time.Time) error {
	if productID == f.failFor {
		return errors.New("ledger write refused")
	}
	return f.Repository.ApplyDelta(ctx, productID, delta, appliedAt)
}

func TestApplyItemFailureDoesNotBlockSiblings(t *testing.T) {
	db := setupStockTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	lamp := seedProduct(t, db, "Aurora Lamp", 100)
	sconce := seedProduct(t, db, "Beacon Sconce", 50)
	require.NoError(t, repo.Upsert(ctx, lamp.ID, map[string]any{"current_qty": 100}))
	require.NoError(t, repo.Upsert(ctx, sconce.ID, map[string]any{"current_qty": 50}))
	order := seedOrder(t, db, enums.OrderStatusPending, map[uuid.UUID]int{lamp.ID: 10, sconce.ID: 5})

	mutator, err := NewMutator(&flakyRepo{Repository: repo, failFor: lamp.ID}, NewOrderSource(db), testLogger())
	require.NoError(t, err)

	results, err := mutator.ApplyOrderStock(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	failed := FailedItems(results)
	require.Len(t, failed, 1)
	assert.Equal(t, lamp.ID, failed[0].ProductID)

	// the healthy sibling was still deducted
	ledger, err := repo.Get(ctx, sconce.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, ledger.CurrentQty)

	// the marker is set so the reconciler, not a retry, fixes the failed item
	source := NewOrderSource(db)
	stored, err := source.FindOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.StockAppliedAt)
}
