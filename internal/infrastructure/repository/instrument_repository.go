package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	domainRepo "github.com/sellista/pos-checkout-api/internal/domain/repository"
	"gorm.io/gorm"
)

type instrumentRepository struct {
	db *gorm.DB
}

// NewInstrumentRepository creates a new tender instrument repository
func NewInstrumentRepository(db *gorm.DB) domainRepo.InstrumentRepository {
	return &instrumentRepository{db: db}
}

func (r *instrumentRepository) Create(ctx context.Context, instrument *entity.TenderInstrument) error {
	return r.db.WithContext(ctx).Create(instrument).Error
}

func (r *instrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TenderInstrument, error) {
	var instrument entity.TenderInstrument
	err := r.db.WithContext(ctx).First(&instrument, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &instrument, err
}

func (r *instrumentRepository) Update(ctx context.Context, instrument *entity.TenderInstrument) error {
	return r.db.WithContext(ctx).Save(instrument).Error
}

func (r *instrumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TenderInstrument{}, "id = ?", id).Error
}

func (r *instrumentRepository) List(ctx context.Context, activeOnly bool) ([]entity.TenderInstrument, error) {
	var instruments []entity.TenderInstrument
	query := r.db.WithContext(ctx).Model(&entity.TenderInstrument{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("description ASC").Find(&instruments).Error
	return instruments, err
}

func (r *instrumentRepository) ListByKind(ctx context.Context, kind enum.TenderKind, activeOnly bool) ([]entity.TenderInstrument, error) {
	var instruments []entity.TenderInstrument
	query := r.db.WithContext(ctx).Where("kind = ?", kind)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("description ASC").Find(&instruments).Error
	return instruments, err
}

func (r *instrumentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.TenderInstrument{}).Count(&count).Error
	return count, err
}
