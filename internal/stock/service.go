package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/luminaretail/orders-backend/pkg/errors"
)

// Service is the read/trigger surface the API exposes over the ledger.
type Service interface {
	ListStock(ctx context.Context) ([]StockRow, error)
	GetStock(ctx context.Context, productID uuid.UUID) (*StockRow, error)
	SyncAllStock(ctx context.Context) (*SyncSummary, error)
}

type service struct {
	repo       Repository
	reconciler *Reconciler
}

// NewService wires the stock service with its repository and reconciler.
func NewService(repo Repository, reconciler *Reconciler) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	return &service{repo: repo, reconciler: reconciler}, nil
}

func (s *service) ListStock(ctx context.Context) ([]StockRow, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing stock ledgers")
	}

	rows := make([]StockRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, rowFromStatus(product.ID, product.Name, Evaluate(product.Ledger)))
	}
	return rows, nil
}

func (s *service) GetStock(ctx context.Context, productID uuid.UUID) (*StockRow, error) {
	if productID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "product not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading product")
	}

	ledger, err := s.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Known product without a ledger row reads as an empty entry.
			row := rowFromStatus(productID, product.Name, Status{})
			return &row, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading stock ledger")
	}

	row := rowFromStatus(productID, product.Name, Evaluate(ledger))
	return &row, nil
}

func (s *service) SyncAllStock(ctx context.Context) (*SyncSummary, error) {
	return s.reconciler.SyncAllStock(ctx)
}

func rowFromStatus(productID uuid.UUID, name string, status Status) StockRow {
	return StockRow{
		ProductID:        productID,
		ProductName:      name,
		HasStockEntry:    status.HasStockEntry,
		CurrentQuantity:  status.CurrentQty,
		DisplayQuantity:  status.DisplayQty,
		ReservedQuantity: status.ReservedQty,
		EffectiveDisplay: status.EffectiveDisplay,
		NeedsSync:        status.NeedsSync,
		Difference:       status.Difference,
		LastSyncAt:       status.LastSyncAt,
	}
}
