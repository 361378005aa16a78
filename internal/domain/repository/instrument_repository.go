package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
)

// InstrumentRepository defines the interface for tender instrument data operations
type InstrumentRepository interface {
	Create(ctx context.Context, instrument *entity.TenderInstrument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TenderInstrument, error)
	Update(ctx context.Context, instrument *entity.TenderInstrument) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns instruments, optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]entity.TenderInstrument, error)
	ListByKind(ctx context.Context, kind enum.TenderKind, activeOnly bool) ([]entity.TenderInstrument, error)
	Count(ctx context.Context) (int64, error)
}
