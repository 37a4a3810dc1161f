package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalreports "github.com/luminaretail/orders-backend/internal/reports"
)

type stubReportsService struct {
	statsFn    func(ctx context.Context) (*internalreports.DashboardStats, error)
	salesFn    func(ctx context.Context, year int) (*internalreports.SalesReport, error)
	bestFn     func(ctx context.Context, limit int) ([]internalreports.BestSellingProduct, error)
	monthlyFn  func(ctx context.Context, year int) ([]float64, error)
	categoryFn func(ctx context.Context, limit int) ([]internalreports.CategorySales, error)
}

func (s stubReportsService) DashboardStats(ctx context.Context) (*internalreports.DashboardStats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &internalreports.DashboardStats{}, nil
}

func (s stubReportsService) SalesReport(ctx context.Context, year int) (*internalreports.SalesReport, error) {
	if s.salesFn != nil {
		return s.salesFn(ctx, year)
	}
	return &internalreports.SalesReport{}, nil
}

func (s stubReportsService) BestSelling(ctx context.Context, limit int) ([]internalreports.BestSellingProduct, error) {
	if s.bestFn != nil {
		return s.bestFn(ctx, limit)
	}
	return nil, nil
}

func (s stubReportsService) MonthlyEarnings(ctx context.Context, year int) ([]float64, error) {
	if s.monthlyFn != nil {
		return s.monthlyFn(ctx, year)
	}
	return make([]float64, 12), nil
}

func (s stubReportsService) CategorySales(ctx context.Context, limit int) ([]internalreports.CategorySales, error) {
	if s.categoryFn != nil {
		return s.categoryFn(ctx, limit)
	}
	return nil, nil
}

func TestSalesReport_YearParam(t *testing.T) {
	svc := stubReportsService{
		salesFn: func(ctx context.Context, year int) (*internalreports.SalesReport, error) {
			if year != 2024 {
				t.Fatalf("unexpected year %d", year)
			}
			return &internalreports.SalesReport{Year: 2024, TotalSales: 450}, nil
		},
	}
	handler := SalesReport(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?year=2024", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data internalreports.SalesReport `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Year != 2024 || envelope.Data.TotalSales != 450 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestSalesReport_BadYear(t *testing.T) {
	handler := SalesReport(stubReportsService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/?year=abc", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestBestSelling_DefaultLimit(t *testing.T) {
	svc := stubReportsService{
		bestFn: func(ctx context.Context, limit int) ([]internalreports.BestSellingProduct, error) {
			if limit != 10 {
				t.Fatalf("unexpected limit %d", limit)
			}
			return nil, nil
		},
	}
	handler := BestSelling(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCategorySales_DefaultLimit(t *testing.T) {
	svc := stubReportsService{
		categoryFn: func(ctx context.Context, limit int) ([]internalreports.CategorySales, error) {
			if limit != 3 {
				t.Fatalf("unexpected limit %d", limit)
			}
			return []internalreports.CategorySales{
				{Category: "Chandeliers", TotalQuantity: 10, TotalRevenue: 4200, ProductCount: 2},
			}, nil
		},
	}
	handler := CategorySales(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []internalreports.CategorySales `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Category != "Chandeliers" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestDashboardStats(t *testing.T) {
	svc := stubReportsService{
		statsFn: func(ctx context.Context) (*internalreports.DashboardStats, error) {
			return &internalreports.DashboardStats{
				OrderCounts: map[string]int{"pending": 3},
			}, nil
		},
	}
	handler := DashboardStats(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data internalreports.DashboardStats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderCounts["pending"] != 3 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
