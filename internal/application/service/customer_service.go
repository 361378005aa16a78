package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Code     *string
	Name     string
	Document *string
	Phone    *string
	Email    *string
	Address  *string
	City     *string
	State    *string
	Zip      *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	if input.Code != nil && *input.Code != "" {
		existing, err := s.customerRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Customer code already exists")
		}
	}

	customer := &entity.Customer{
		Code:     input.Code,
		Name:     input.Name,
		Document: input.Document,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
		Active:   true,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// Search returns active customers matching a partial code, name or document,
// for the register lookup prompt.
func (s *CustomerService) Search(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	if term == "" {
		return []entity.Customer{}, nil
	}
	return s.customerRepo.Search(ctx, term, limit)
}

// ListCustomers returns customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params, search)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Code     *string
	Name     *string
	Document *string
	Phone    *string
	Email    *string
	Address  *string
	City     *string
	State    *string
	Zip      *string
	Active   *bool
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Code != nil {
		customer.Code = input.Code
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Document != nil {
		customer.Document = input.Document
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.State != nil {
		customer.State = input.State
	}
	if input.Zip != nil {
		customer.Zip = input.Zip
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
