package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/domain/payment"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

// InstrumentService handles tender instrument catalog operations
type InstrumentService struct {
	instrumentRepo repository.InstrumentRepository
}

// NewInstrumentService creates a new instrument service
func NewInstrumentService(instrumentRepo repository.InstrumentRepository) *InstrumentService {
	return &InstrumentService{instrumentRepo: instrumentRepo}
}

// CreateInstrumentInput represents the create instrument input
type CreateInstrumentInput struct {
	Description        string
	Kind               enum.TenderKind
	AllowsInstallments bool
}

// CreateInstrument creates a new tender instrument
func (s *InstrumentService) CreateInstrument(ctx context.Context, input *CreateInstrumentInput) (*entity.TenderInstrument, error) {
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Instrument description is required")
	}

	instrument := &entity.TenderInstrument{
		Description:        input.Description,
		Kind:               input.Kind,
		AllowsInstallments: input.AllowsInstallments,
		Active:             true,
	}

	if err := s.instrumentRepo.Create(ctx, instrument); err != nil {
		return nil, err
	}

	return instrument, nil
}

// GetInstrument retrieves an instrument by ID
func (s *InstrumentService) GetInstrument(ctx context.Context, id uuid.UUID) (*entity.TenderInstrument, error) {
	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, apperror.NewNotFoundError("Tender instrument")
	}
	return instrument, nil
}

// ListInstruments returns instruments, optionally restricted to active ones
func (s *InstrumentService) ListInstruments(ctx context.Context, activeOnly bool) ([]entity.TenderInstrument, error) {
	return s.instrumentRepo.List(ctx, activeOnly)
}

// ActiveCatalog returns the active instruments as the payment engine's
// instrument catalog.
func (s *InstrumentService) ActiveCatalog(ctx context.Context) ([]payment.Instrument, error) {
	instruments, err := s.instrumentRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	catalog := make([]payment.Instrument, 0, len(instruments))
	for _, in := range instruments {
		catalog = append(catalog, payment.Instrument{
			ID:          in.ID,
			Description: in.Description,
			Kind:        in.Kind,
		})
	}
	return catalog, nil
}

// UpdateInstrumentInput represents the update instrument input
type UpdateInstrumentInput struct {
	Description        *string
	Kind               *enum.TenderKind
	AllowsInstallments *bool
	Active             *bool
}

// UpdateInstrument updates an existing instrument
func (s *InstrumentService) UpdateInstrument(ctx context.Context, id uuid.UUID, input *UpdateInstrumentInput) (*entity.TenderInstrument, error) {
	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, apperror.NewNotFoundError("Tender instrument")
	}

	if input.Description != nil {
		instrument.Description = *input.Description
	}
	if input.Kind != nil {
		instrument.Kind = *input.Kind
	}
	if input.AllowsInstallments != nil {
		instrument.AllowsInstallments = *input.AllowsInstallments
	}
	if input.Active != nil {
		instrument.Active = *input.Active
	}

	if err := s.instrumentRepo.Update(ctx, instrument); err != nil {
		return nil, err
	}

	return instrument, nil
}

// DeleteInstrument soft-deletes an instrument
func (s *InstrumentService) DeleteInstrument(ctx context.Context, id uuid.UUID) error {
	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if instrument == nil {
		return apperror.NewNotFoundError("Tender instrument")
	}
	return s.instrumentRepo.Delete(ctx, id)
}
