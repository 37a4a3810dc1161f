package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luminaretail/orders-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stock ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Get(ctx context.Context, productID uuid.UUID) (*models.StockLedger, error) {
	var ledger models.StockLedger
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *repository) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Ledger").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Upsert(ctx context.Context, productID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).
		Model(&models.StockLedger{}).
		Where("product_id = ?", productID).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	ledger := ledgerFromUpdates(productID, updates)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(&ledger).Error
	return err
}

// ApplyDelta adjusts current_qty by delta in one guarded statement, clamping
// at zero. The CASE expression keeps the same SQL valid on Postgres and the
// SQLite test driver.
func (r *repository) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int, appliedAt time.Time) error {
	const stmt = `
UPDATE stock_ledgers
SET current_qty = CASE WHEN current_qty + ? < 0 THEN 0 ELSE current_qty + ? END,
    inventory_updated_at = ?,
    updated_at = ?
WHERE product_id = ?`

	tx := r.db.WithContext(ctx).Exec(stmt, delta, delta, appliedAt, appliedAt, productID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	// Lazily seed a ledger row from the catalog baseline, then retry the
	// guarded update once.
	product, err := r.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	ledger := models.StockLedger{
		ProductID:  productID,
		CurrentQty: product.BaselineQty,
		DisplayQty: product.BaselineQty,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ledger).Error; err != nil {
		return err
	}

	tx = r.db.WithContext(ctx).Exec(stmt, delta, delta, appliedAt, appliedAt, productID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("stock ledger row could not be seeded")
	}
	return nil
}

func ledgerFromUpdates(productID uuid.UUID, updates map[string]any) models.StockLedger {
	ledger := models.StockLedger{ProductID: productID}
	if v, ok := updates["current_qty"].(int); ok {
		ledger.CurrentQty = v
	}
	if v, ok := updates["display_qty"].(int); ok {
		ledger.DisplayQty = v
	}
	if v, ok := updates["reserved_qty"].(int); ok {
		ledger.ReservedQty = v
	}
	if v, ok := updates["last_sync_at"].(time.Time); ok {
		ledger.LastSyncAt = &v
	}
	if v, ok := updates["inventory_updated_at"].(time.Time); ok {
		ledger.InventoryUpdatedAt = &v
	}
	if v, ok := updates["display_synced_at"].(time.Time); ok {
		ledger.DisplaySyncedAt = &v
	}
	return ledger
}
