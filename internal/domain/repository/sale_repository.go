package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale together with its lines and payments.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByDocumentNo(ctx context.Context, documentNo int64) (*entity.Sale, error)
	// GetWithDetails loads the sale with lines, payments, customer and user.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// NextDocumentNo reserves the next sequential document number.
	NextDocumentNo(ctx context.Context) (int64, error)
	// TotalsBySession sums cash-equivalent payments for a cash session.
	TotalsBySession(ctx context.Context, sessionID uuid.UUID) (SessionSaleTotals, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	UserID        *uuid.UUID
	CustomerID    *uuid.UUID
	CashSessionID *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	Cancelled     *bool
	SortBy        string
	SortOrder     string
}

// SessionSaleTotals aggregates the sales recorded against one cash session
type SessionSaleTotals struct {
	Count     int64
	Total     decimal.Decimal
	CashTotal decimal.Decimal
}
