package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/api/middleware"
	"github.com/luminaretail/orders-backend/api/responses"
	"github.com/luminaretail/orders-backend/api/validators"
	internalorders "github.com/luminaretail/orders-backend/internal/orders"
	"github.com/luminaretail/orders-backend/pkg/enums"
	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

type transitionBody struct {
	Target         string  `json:"target" validate:"required,oneof=pending approved in_transit complete cancelled"`
	TrackingNumber *string `json:"trackingNumber" validate:"omitempty,max=100"`
	Courier        *string `json:"courier" validate:"omitempty,max=100"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

// TransitionOrder moves an order through the status state machine. The
// acting admin is read from the authenticated request context.
func TransitionOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body transitionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		target, err := enums.ParseOrderStatus(body.Target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Transition(r.Context(), internalorders.TransitionInput{
			OrderID:        orderID,
			Target:         target,
			TrackingNumber: body.TrackingNumber,
			Courier:        body.Courier,
			Notes:          body.Notes,
			Actor:          actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var statusFilter *enums.OrderStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			statusFilter = &status
		}

		orders, err := svc.ListOrders(r.Context(), statusFilter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}

func actorFromContext(r *http.Request) (internalorders.Actor, error) {
	rawAdminID := middleware.AdminIDFromContext(r.Context())
	if rawAdminID == "" {
		return internalorders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	adminID, err := uuid.Parse(rawAdminID)
	if err != nil {
		return internalorders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin identity")
	}
	role, err := enums.ParseAdminRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return internalorders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin role")
	}
	return internalorders.Actor{
		AdminID: adminID,
		Branch:  middleware.BranchFromContext(r.Context()),
		Role:    role,
	}, nil
}
