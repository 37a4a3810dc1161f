package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/pkg/enums"
)

// Order is created by the upstream checkout flow in pending status and is
// mutated only through validated status transitions. StockAppliedAt marks
// that this order's items were deducted from the stock ledger, so a
// re-delivered approval cannot double-apply.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber     int64             `gorm:"column:order_number;not null"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Branch          string            `gorm:"column:branch;not null;default:''"`
	AssignedAdminID *uuid.UUID        `gorm:"column:assigned_admin_id;type:uuid"`
	TotalCents      int               `gorm:"column:total_cents;not null;default:0"`
	TrackingNumber  *string           `gorm:"column:tracking_number"`
	Courier         *string           `gorm:"column:courier"`
	Notes           *string           `gorm:"column:notes"`
	StockAppliedAt  *time.Time        `gorm:"column:stock_applied_at"`
	CompletedAt     *time.Time        `gorm:"column:completed_at"`
	CancelledAt     *time.Time        `gorm:"column:cancelled_at"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
