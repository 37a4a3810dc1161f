package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminaretail/orders-backend/pkg/db/models"
)

type catalogBaseline struct {
	db *gorm.DB
}

// NewCatalogBaseline reads baselines from the product catalog's
// baseline_qty column, the default source for the reconciler.
func NewCatalogBaseline(db *gorm.DB) BaselineSource {
	return &catalogBaseline{db: db}
}

func (c *catalogBaseline) Baselines(ctx context.Context) (map[uuid.UUID]int, error) {
	var products []models.Product
	err := c.db.WithContext(ctx).
		Select("id", "baseline_qty").
		Where("is_active = ?", true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	baselines := make(map[uuid.UUID]int, len(products))
	for _, product := range products {
		baselines[product.ID] = product.BaselineQty
	}
	return baselines, nil
}
