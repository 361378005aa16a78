package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// GetByCode resolves a product by its primary code or any alternative code.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	// Search matches code, alternative codes or description against a
	// partial term, for the register's product lookup prompt.
	Search(ctx context.Context, term string, limit int) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AdjustStockBatch applies signed stock deltas for multiple products in
	// one transaction. Negative deltas decrement (sale), positive restore
	// (cancellation). Products with TrackStock disabled are skipped by the
	// caller.
	AdjustStockBatch(ctx context.Context, deltas map[uuid.UUID]decimal.Decimal) error
}
