package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusComplete  OrderStatus = "complete"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusInTransit,
	OrderStatusComplete,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusComplete || s == OrderStatusCancelled
}

// ConsumesStock reports whether orders in this status count against on-hand inventory.
func (s OrderStatus) ConsumesStock() bool {
	switch s {
	case OrderStatusApproved, OrderStatusInTransit, OrderStatusComplete:
		return true
	default:
		return false
	}
}

// StockConsumingStatuses returns the statuses whose items count as consumed inventory.
func StockConsumingStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusApproved, OrderStatusInTransit, OrderStatusComplete}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
