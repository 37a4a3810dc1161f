package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luminaretail/orders-backend/pkg/enums"
)

// Admin is an operator account. Branch scopes which orders the admin may
// modify unless the role grants elevated access.
type Admin struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Email     string          `gorm:"column:email;not null;uniqueIndex"`
	Name      string          `gorm:"column:name;not null;default:''"`
	Branch    string          `gorm:"column:branch;not null;default:''"`
	Role      enums.AdminRole `gorm:"column:role;not null;default:'admin'"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
