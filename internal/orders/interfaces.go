package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	ListOrders(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error)
}

// StockMutator applies and reverses an order's ledger effect.
type StockMutator interface {
	ApplyOrderStock(ctx context.Context, orderID uuid.UUID) ([]stock.ItemResult, error)
	ReverseOrderStock(ctx context.Context, orderID uuid.UUID) ([]stock.ItemResult, error)
}
