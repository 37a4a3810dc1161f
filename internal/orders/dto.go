package orders

import (
	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/db/models"
	"github.com/luminaretail/orders-backend/pkg/enums"
)

// Actor identifies the admin performing an operation.
type Actor struct {
	AdminID uuid.UUID
	Branch  string
	Role    enums.AdminRole
}

// TransitionInput carries a status transition request.
type TransitionInput struct {
	OrderID        uuid.UUID
	Target         enums.OrderStatus
	TrackingNumber *string
	Courier        *string
	Notes          *string
	Actor          Actor
}

// StockIssue is one failed ledger adjustment surfaced to the operator.
type StockIssue struct {
	ProductID uuid.UUID `json:"productId"`
	Qty       int       `json:"qty"`
	Message   string    `json:"message"`
}

// TransitionResult is the outcome of a transition. StockIssues is non-empty
// when the status change succeeded but some ledger writes did not.
type TransitionResult struct {
	Order       *models.Order `json:"order"`
	StockIssues []StockIssue  `json:"stockIssues,omitempty"`
}

func issuesFromResults(results []stock.ItemResult) []StockIssue {
	var issues []StockIssue
	for _, r := range stock.FailedItems(results) {
		message := "ledger adjustment failed"
		if r.Err != nil {
			message = r.Err.Error()
		}
		issues = append(issues, StockIssue{ProductID: r.ProductID, Qty: r.Qty, Message: message})
	}
	return issues
}
