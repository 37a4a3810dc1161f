package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/api/middleware"
	internalorders "github.com/luminaretail/orders-backend/internal/orders"
	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
)

type stubOrdersService struct {
	transitionFn func(ctx context.Context, input internalorders.TransitionInput) (*internalorders.TransitionResult, error)
	getFn        func(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	listFn       func(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error)
}

func (s stubOrdersService) Transition(ctx context.Context, input internalorders.TransitionInput) (*internalorders.TransitionResult, error) {
	if s.transitionFn != nil {
		return s.transitionFn(ctx, input)
	}
	return &internalorders.TransitionResult{}, nil
}

func (s stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, orderID)
	}
	return &models.Order{}, nil
}

func (s stubOrdersService) ListOrders(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, status)
	}
	return nil, nil
}

func withOrderID(req *http.Request, orderID uuid.UUID) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withActor(req *http.Request, adminID uuid.UUID, branch string, role enums.AdminRole) *http.Request {
	ctx := middleware.WithAdminID(req.Context(), adminID.String())
	ctx = middleware.WithBranch(ctx, branch)
	ctx = middleware.WithRole(ctx, role.String())
	return req.WithContext(ctx)
}

func TestTransitionOrder(t *testing.T) {
	orderID := uuid.New()
	adminID := uuid.New()

	svc := stubOrdersService{
		transitionFn: func(ctx context.Context, input internalorders.TransitionInput) (*internalorders.TransitionResult, error) {
			if input.OrderID != orderID {
				t.Fatalf("unexpected order id %s", input.OrderID)
			}
			if input.Target != enums.OrderStatusApproved {
				t.Fatalf("unexpected target %s", input.Target)
			}
			if input.Actor.AdminID != adminID || input.Actor.Branch != "north" {
				t.Fatalf("unexpected actor %+v", input.Actor)
			}
			return &internalorders.TransitionResult{
				Order: &models.Order{ID: orderID, Status: enums.OrderStatusApproved},
			}, nil
		},
	}

	handler := TransitionOrder(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"target":"approved"}`))
	req = withOrderID(req, orderID)
	req = withActor(req, adminID, "north", enums.AdminRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data internalorders.TransitionResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Order == nil || envelope.Data.Order.Status != enums.OrderStatusApproved {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestTransitionOrder_MissingActor(t *testing.T) {
	handler := TransitionOrder(stubOrdersService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"target":"approved"}`))
	req = withOrderID(req, uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestTransitionOrder_InvalidTarget(t *testing.T) {
	handler := TransitionOrder(stubOrdersService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"target":"shipped"}`))
	req = withOrderID(req, uuid.New())
	req = withActor(req, uuid.New(), "north", enums.AdminRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := stubOrdersService{
		getFn: func(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		},
	}
	handler := GetOrder(svc, nil)
	req := withOrderID(httptest.NewRequest(http.MethodGet, "/", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	handler := GetOrder(stubOrdersService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrders_StatusFilter(t *testing.T) {
	svc := stubOrdersService{
		listFn: func(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error) {
			if status == nil || *status != enums.OrderStatusPending {
				t.Fatalf("unexpected filter %v", status)
			}
			return []models.Order{{Status: enums.OrderStatusPending}}, nil
		},
	}
	handler := ListOrders(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?status=pending", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestListOrders_BadStatusFilter(t *testing.T) {
	handler := ListOrders(stubOrdersService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
