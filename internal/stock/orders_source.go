package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
)

type orderSource struct {
	db *gorm.DB
}

// NewOrderSource builds the order reads used by the mutator and reconciler.
func NewOrderSource(db *gorm.DB) OrderSource {
	return &orderSource{db: db}
}

func (o *orderSource) FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := o.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *orderSource) SetStockApplied(ctx context.Context, orderID uuid.UUID, at *time.Time) error {
	return o.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"stock_applied_at": at,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (o *orderSource) ConsumedQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	statuses := enums.StockConsumingStatuses()
	return o.aggregateByStatus(ctx, statuses)
}

func (o *orderSource) ReservedQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	return o.aggregateByStatus(ctx, []enums.OrderStatus{enums.OrderStatusPending})
}

func (o *orderSource) aggregateByStatus(ctx context.Context, statuses []enums.OrderStatus) (map[uuid.UUID]int, error) {
	type row struct {
		ProductID uuid.UUID
		Total     int
	}
	var rows []row
	err := o.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, SUM(order_items.qty) AS total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ?", statuses).
		Group("order_items.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		totals[r.ProductID] = r.Total
	}
	return totals, nil
}
