package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	domainRepo "github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByDocumentNo(ctx context.Context, documentNo int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_lines.sequence ASC")
		}).
		Preload("Lines.Product").
		Preload("Payments").
		Preload("Payments.Instrument").
		Preload("Customer").
		Preload("User").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("CAST(document_no AS TEXT) ILIKE ?", "%"+params.Search+"%")
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.CashSessionID != nil {
		query = query.Where("cash_session_id = ?", *params.CashSessionID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if params.Cancelled != nil {
		query = query.Where("cancelled = ?", *params.Cancelled)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "sale_date"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Preload("Customer").
		Find(&sales).Error

	return sales, total, err
}

// NextDocumentNo reserves the next sequential number from the document
// sequence, so two registers never mint the same number. The sequence is
// created and synced to the existing sales during migration.
func (r *saleRepository) NextDocumentNo(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Raw("SELECT nextval('sale_document_no_seq')").
		Scan(&next).Error
	return next, err
}

func (r *saleRepository) TotalsBySession(ctx context.Context, sessionID uuid.UUID) (domainRepo.SessionSaleTotals, error) {
	var totals domainRepo.SessionSaleTotals

	row := struct {
		Count int64
		Total decimal.Decimal
	}{}
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("cash_session_id = ? AND cancelled = ?", sessionID, false).
		Scan(&row).Error
	if err != nil {
		return totals, err
	}
	totals.Count = row.Count
	totals.Total = row.Total

	// Cash moves the drawer; applied minus change is the net cash taken.
	cash := struct {
		Total decimal.Decimal
	}{}
	err = r.db.WithContext(ctx).Model(&entity.SalePayment{}).
		Select("COALESCE(SUM(sale_payments.amount_applied), 0) AS total").
		Joins("JOIN sales ON sales.id = sale_payments.sale_id").
		Joins("JOIN tender_instruments ON tender_instruments.id = sale_payments.instrument_id").
		Where("sales.cash_session_id = ? AND sales.cancelled = ?", sessionID, false).
		Where("tender_instruments.kind = ?", enum.TenderKindCash).
		Scan(&cash).Error
	if err != nil {
		return totals, err
	}
	totals.CashTotal = cash.Total

	return totals, nil
}
