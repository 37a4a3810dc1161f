package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
)

// Service defines read-only reporting operations. All money math runs on
// decimals and is converted to floats only at the response edge.
type Service interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	SalesReport(ctx context.Context, year int) (*SalesReport, error)
	BestSelling(ctx context.Context, limit int) ([]BestSellingProduct, error)
	MonthlyEarnings(ctx context.Context, year int) ([]float64, error)
	CategorySales(ctx context.Context, limit int) ([]CategorySales, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a reports service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

var oneHundred = decimal.NewFromInt(100)

func centsToFloat(cents int64) float64 {
	value, _ := decimal.NewFromInt(cents).Div(oneHundred).Float64()
	return value
}

// growthPercent is period-over-period growth. A zero previous period maps
// to 100% when anything was sold and 0% otherwise.
func growthPercent(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	cur := decimal.NewFromInt(current)
	prev := decimal.NewFromInt(previous)
	growth, _ := cur.Sub(prev).Div(prev).Mul(oneHundred).Round(2).Float64()
	return growth
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting orders")
	}

	orderCounts := make(map[string]int, len(counts))
	for status, count := range counts {
		orderCounts[status.String()] = count
	}

	now := s.now()
	stats := &DashboardStats{OrderCounts: orderCounts}

	windows := []struct {
		from   time.Time
		target *EarningsWindow
	}{
		{from: now.AddDate(0, 0, -7), target: &stats.Week},
		{from: now.AddDate(0, -1, 0), target: &stats.Month},
		{from: now.AddDate(-1, 0, 0), target: &stats.Year},
	}
	for _, w := range windows {
		window, err := s.earningsWindow(ctx, w.from, now)
		if err != nil {
			return nil, err
		}
		*w.target = window
	}
	return stats, nil
}

func (s *service) earningsWindow(ctx context.Context, from, to time.Time) (EarningsWindow, error) {
	current, err := s.repo.CompletedEarnings(ctx, from, to)
	if err != nil {
		return EarningsWindow{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing earnings")
	}

	span := to.Sub(from)
	previous, err := s.repo.CompletedEarnings(ctx, from.Add(-span), from)
	if err != nil {
		return EarningsWindow{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing previous earnings")
	}

	return EarningsWindow{
		TotalSales: centsToFloat(current),
		Growth:     growthPercent(current, previous),
	}, nil
}

func (s *service) SalesReport(ctx context.Context, year int) (*SalesReport, error) {
	if year <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year is required")
	}

	buckets, err := s.monthlyCents(ctx, year)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{Year: year, Months: make([]MonthlySales, 0, 12)}
	totalCents := int64(0)
	growthSum := decimal.Zero
	growthSamples := 0

	for month := 0; month < 12; month++ {
		growth := 0.0
		if month > 0 {
			growth = growthPercent(buckets[month], buckets[month-1])
			growthSum = growthSum.Add(decimal.NewFromFloat(growth))
			growthSamples++
		}
		report.Months = append(report.Months, MonthlySales{
			Month:      month + 1,
			TotalSales: centsToFloat(buckets[month]),
			Growth:     growth,
		})
		totalCents += buckets[month]
	}

	report.TotalSales = centsToFloat(totalCents)
	if growthSamples > 0 {
		avg, _ := growthSum.Div(decimal.NewFromInt(int64(growthSamples))).Round(2).Float64()
		report.AverageGrowth = avg
	}
	return report, nil
}

func (s *service) BestSelling(ctx context.Context, limit int) ([]BestSellingProduct, error) {
	rows, err := s.repo.BestSellingProducts(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ranking products")
	}

	products := make([]BestSellingProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, BestSellingProduct{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			TotalSales:   centsToFloat(row.RevenueCents),
		})
	}
	return products, nil
}

func (s *service) MonthlyEarnings(ctx context.Context, year int) ([]float64, error) {
	if year <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year is required")
	}

	buckets, err := s.monthlyCents(ctx, year)
	if err != nil {
		return nil, err
	}

	earnings := make([]float64, 12)
	for month, cents := range buckets {
		earnings[month] = centsToFloat(cents)
	}
	return earnings, nil
}

func (s *service) CategorySales(ctx context.Context, limit int) ([]CategorySales, error) {
	rows, err := s.repo.CategorySales(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grouping category sales")
	}

	categories := make([]CategorySales, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, CategorySales{
			Category:      row.Category,
			TotalQuantity: row.QuantitySold,
			TotalRevenue:  centsToFloat(row.RevenueCents),
			ProductCount:  row.ProductCount,
		})
	}
	return categories, nil
}

func (s *service) monthlyCents(ctx context.Context, year int) ([]int64, error) {
	totals, err := s.repo.CompletedOrderTotals(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading completed orders")
	}

	buckets := make([]int64, 12)
	for _, total := range totals {
		buckets[int(total.CompletedAt.Month())-1] += total.TotalCents
	}
	return buckets, nil
}
