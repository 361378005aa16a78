package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
)

// CashSessionRepository defines the interface for cash session data operations
type CashSessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetOpen returns the currently open session, or nil when the till is closed.
	GetOpen(ctx context.Context) (*entity.CashSession, error)
	Update(ctx context.Context, session *entity.CashSession) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashSession, int64, error)
	// GetWithMovements loads the session with its movement ledger.
	GetWithMovements(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)

	// AddMovement appends a ledger entry and updates the session running
	// totals in the same transaction.
	AddMovement(ctx context.Context, movement *entity.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]entity.CashMovement, error)
}
