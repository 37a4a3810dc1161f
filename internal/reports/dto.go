package reports

import "github.com/google/uuid"

// EarningsWindow is the completed-order revenue for one time window with
// growth relative to the preceding window of the same length.
type EarningsWindow struct {
	TotalSales float64 `json:"totalSales"`
	Growth     float64 `json:"growth"`
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	OrderCounts map[string]int `json:"orderCounts"`
	Week        EarningsWindow `json:"week"`
	Month       EarningsWindow `json:"month"`
	Year        EarningsWindow `json:"year"`
}

// MonthlySales is one month's revenue inside a sales report.
type MonthlySales struct {
	Month      int     `json:"month"`
	TotalSales float64 `json:"totalSales"`
	Growth     float64 `json:"growth"`
}

// SalesReport aggregates a calendar year of completed orders.
type SalesReport struct {
	Year          int            `json:"year"`
	Months        []MonthlySales `json:"months"`
	TotalSales    float64        `json:"totalSales"`
	AverageGrowth float64        `json:"averageGrowth"`
}

// CategorySales groups completed-order sales by product category.
type CategorySales struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	ProductCount  int     `json:"productCount"`
}

// BestSellingProduct ranks a product by quantity sold in completed orders.
type BestSellingProduct struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName"`
	QuantitySold int       `json:"quantitySold"`
	TotalSales   float64   `json:"totalSales"`
}
