package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

// SettingsService handles company settings operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	customerRepo repository.CustomerRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, customerRepo repository.CustomerRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		customerRepo: customerRepo,
	}
}

// GetSettings returns the company settings, creating the row on first access
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.CompanySettings{
			TradeName:   "Minha Loja",
			ControlTill: true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	TradeName         *string
	LegalName         *string
	Document          *string
	Address           *string
	Phone             *string
	ReceiptFooter     *string
	ControlTill       *bool
	DefaultCustomerID *uuid.UUID
}

// UpdateSettings updates the company settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.TradeName != nil {
		if *input.TradeName == "" {
			return nil, apperror.NewBadRequestError("Trade name cannot be empty")
		}
		settings.TradeName = *input.TradeName
	}
	if input.LegalName != nil {
		settings.LegalName = input.LegalName
	}
	if input.Document != nil {
		settings.Document = input.Document
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = input.ReceiptFooter
	}
	if input.ControlTill != nil {
		settings.ControlTill = *input.ControlTill
	}
	if input.DefaultCustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.DefaultCustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Default customer")
		}
		settings.DefaultCustomerID = input.DefaultCustomerID
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
