package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
)

// OrderTotal is one completed order's revenue stamp.
type OrderTotal struct {
	CompletedAt time.Time
	TotalCents  int64
}

// BestSellingRow is the raw aggregation behind the best-seller ranking.
type BestSellingRow struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	RevenueCents int64
}

// CategorySalesRow is the raw per-category aggregation over completed orders.
type CategorySalesRow struct {
	Category     string
	QuantitySold int
	RevenueCents int64
	ProductCount int
}

// Repository defines the read-only aggregations reporting needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountOrdersByStatus(ctx context.Context) (map[enums.OrderStatus]int, error)
	CompletedEarnings(ctx context.Context, from, to time.Time) (int64, error)
	CompletedOrderTotals(ctx context.Context, year int) ([]OrderTotal, error)
	BestSellingProducts(ctx context.Context, limit int) ([]BestSellingRow, error)
	CategorySales(ctx context.Context, limit int) ([]CategorySalesRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CountOrdersByStatus(ctx context.Context) (map[enums.OrderStatus]int, error) {
	type row struct {
		Status enums.OrderStatus
		Total  int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.OrderStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *repository) CompletedEarnings(ctx context.Context, from, to time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_cents)").
		Where("status = ?", enums.OrderStatusComplete).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CompletedOrderTotals loads the year's completed orders for bucketing in
// Go. Month extraction in SQL is not portable across Postgres and SQLite.
func (r *repository) CompletedOrderTotals(ctx context.Context, year int) ([]OrderTotal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Select("completed_at", "total_cents").
		Where("status = ?", enums.OrderStatusComplete).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	totals := make([]OrderTotal, 0, len(orders))
	for _, order := range orders {
		if order.CompletedAt == nil {
			continue
		}
		totals = append(totals, OrderTotal{
			CompletedAt: *order.CompletedAt,
			TotalCents:  int64(order.TotalCents),
		})
	}
	return totals, nil
}

func (r *repository) BestSellingProducts(ctx context.Context, limit int) ([]BestSellingRow, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []BestSellingRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.product_id AS product_id,
			order_items.product_name AS product_name,
			SUM(order_items.qty) AS quantity_sold,
			SUM(order_items.qty * order_items.unit_price_cents) AS revenue_cents`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", enums.OrderStatusComplete).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategorySales buckets completed-order sales by products.category. Items
// whose product left the catalog fall into Uncategorized.
func (r *repository) CategorySales(ctx context.Context, limit int) ([]CategorySalesRow, error) {
	if limit <= 0 {
		limit = 3
	}

	var rows []CategorySalesRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`COALESCE(NULLIF(products.category, ''), 'Uncategorized') AS category,
			SUM(order_items.qty) AS quantity_sold,
			SUM(order_items.qty * order_items.unit_price_cents) AS revenue_cents,
			COUNT(DISTINCT order_items.product_id) AS product_count`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", enums.OrderStatusComplete).
		Group(`COALESCE(NULLIF(products.category, ''), 'Uncategorized')`).
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
