package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/db/models"
)

// Repository manages persistence for stock ledger rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, productID uuid.UUID) (*models.StockLedger, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Upsert(ctx context.Context, productID uuid.UUID, updates map[string]any) error
	ApplyDelta(ctx context.Context, productID uuid.UUID, delta int, appliedAt time.Time) error
}

// OrderSource exposes the order reads and the applied-stock marker the
// mutator and reconciler need. Implemented over the orders tables directly
// so the stock package never depends on the orders service.
type OrderSource interface {
	FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	SetStockApplied(ctx context.Context, orderID uuid.UUID, at *time.Time) error
	ConsumedQuantities(ctx context.Context) (map[uuid.UUID]int, error)
	ReservedQuantities(ctx context.Context) (map[uuid.UUID]int, error)
}

// BaselineSource supplies the authoritative starting quantity per product.
// The default implementation reads the product catalog; restocking or
// returns policy can swap in a richer feed without touching the sync pass.
type BaselineSource interface {
	Baselines(ctx context.Context) (map[uuid.UUID]int, error)
}
