package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

// Service defines order-level operations beyond repository reads.
type Service interface {
	Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error)
}

type service struct {
	repo    Repository
	mutator StockMutator
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, mutator StockMutator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if mutator == nil {
		return nil, fmt.Errorf("stock mutator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		mutator: mutator,
		logg:    logg,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusApproved, enums.OrderStatusCancelled},
	enums.OrderStatusApproved:  {enums.OrderStatusInTransit, enums.OrderStatusCancelled},
	enums.OrderStatusInTransit: {enums.OrderStatusComplete},
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func actorMayModify(order *models.Order, actor Actor) bool {
	if actor.Role == enums.AdminRoleSuperAdmin {
		return true
	}
	if order.AssignedAdminID != nil && *order.AssignedAdminID == actor.AdminID {
		return true
	}
	return order.Branch != "" && order.Branch == actor.Branch
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid target status %q", input.Target))
	}
	if input.Actor.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin identity missing")
	}

	order, err := s.repo.FindOrder(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !actorMayModify(order, input.Actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to admin's branch")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is %s and cannot change", order.Status)).
			WithDetails(map[string]any{"status": order.Status})
	}
	if !transitionAllowed(order.Status, input.Target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Target)).
			WithDetails(map[string]any{"from": order.Status, "to": input.Target})
	}

	// Ledger side effects run before the status write and never block it.
	// Failed items ride back on the result; the reconciler repairs any drift.
	var issues []StockIssue
	switch {
	case input.Target == enums.OrderStatusApproved:
		issues = s.applyStock(ctx, order.ID, s.mutator.ApplyOrderStock)
	case input.Target == enums.OrderStatusCancelled && order.Status == enums.OrderStatusApproved:
		issues = s.applyStock(ctx, order.ID, s.mutator.ReverseOrderStock)
	}

	now := s.now()
	updates := map[string]any{
		"status":     input.Target,
		"updated_at": now,
	}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if input.Courier != nil {
		updates["courier"] = *input.Courier
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	switch input.Target {
	case enums.OrderStatusComplete:
		updates["completed_at"] = now
	case enums.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	if err := s.repo.UpdateOrder(ctx, order.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	updated, err := s.repo.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return &TransitionResult{Order: updated, StockIssues: issues}, nil
}

type stockOp func(ctx context.Context, orderID uuid.UUID) ([]stock.ItemResult, error)

func (s *service) applyStock(ctx context.Context, orderID uuid.UUID, op stockOp) []StockIssue {
	results, err := op(ctx, orderID)
	issues := issuesFromResults(results)
	if err != nil {
		issues = append(issues, StockIssue{Message: err.Error()})
		s.logg.Error(s.logg.WithField(ctx, "order_id", orderID.String()),
			"order stock mutation failed", err)
	}
	return issues
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status filter %q", *status))
	}
	orders, err := s.repo.ListOrders(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}
