package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/money"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Code         string
	Description  string
	Unit         string
	SellingPrice float64
	CostPrice    float64
	Stock        float64
	MinStock     float64
	TrackStock   bool
	Notes        *string
	AltCodes     []string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Code == "" {
		return nil, apperror.NewBadRequestError("Product code is required")
	}
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Product description is required")
	}

	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	sellingPrice, err := money.FromFloat(input.SellingPrice)
	if err != nil {
		return nil, err
	}
	costPrice, err := money.FromFloat(input.CostPrice)
	if err != nil {
		return nil, err
	}
	stock, err := money.FromFloat(input.Stock)
	if err != nil {
		return nil, err
	}
	minStock, err := money.FromFloat(input.MinStock)
	if err != nil {
		return nil, err
	}

	unit := input.Unit
	if unit == "" {
		unit = "UN"
	}

	product := &entity.Product{
		Code:         input.Code,
		Description:  input.Description,
		Unit:         unit,
		SellingPrice: sellingPrice,
		CostPrice:    costPrice,
		Stock:        stock,
		MinStock:     minStock,
		TrackStock:   input.TrackStock,
		Active:       true,
		Notes:        input.Notes,
	}

	for _, code := range input.AltCodes {
		if code == "" {
			continue
		}
		product.AltCodes = append(product.AltCodes, entity.ProductAltCode{Code: code})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// LookupByCode resolves a product from a scanned or typed code, matching the
// primary code or any alternative code. Inactive products do not sell.
func (s *ProductService) LookupByCode(ctx context.Context, code string) (*entity.Product, error) {
	if code == "" {
		return nil, apperror.NewBadRequestError("Product code is required")
	}
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// Search returns active products matching a partial code or description, for
// the register lookup prompt.
func (s *ProductService) Search(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	if term == "" {
		return []entity.Product{}, nil
	}
	return s.productRepo.Search(ctx, term, limit)
}

// ListProducts returns products with pagination
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params, search)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Description  *string
	Unit         *string
	SellingPrice *float64
	CostPrice    *float64
	Stock        *float64
	MinStock     *float64
	TrackStock   *bool
	Active       *bool
	Notes        *string
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.SellingPrice != nil {
		price, err := money.FromFloat(*input.SellingPrice)
		if err != nil {
			return nil, err
		}
		product.SellingPrice = price
	}
	if input.CostPrice != nil {
		price, err := money.FromFloat(*input.CostPrice)
		if err != nil {
			return nil, err
		}
		product.CostPrice = price
	}
	if input.Stock != nil {
		stock, err := money.FromFloat(*input.Stock)
		if err != nil {
			return nil, err
		}
		product.Stock = stock
	}
	if input.MinStock != nil {
		minStock, err := money.FromFloat(*input.MinStock)
		if err != nil {
			return nil, err
		}
		product.MinStock = minStock
	}
	if input.TrackStock != nil {
		product.TrackStock = *input.TrackStock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// GetLowStock returns tracked products at or below their minimum stock
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
