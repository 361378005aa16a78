package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents a finalized sale document
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DocumentNo    int64      `gorm:"uniqueIndex;not null" json:"document_no"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CashSessionID *uuid.UUID `gorm:"type:uuid;index" json:"cash_session_id,omitempty"`
	SaleDate      time.Time  `gorm:"not null" json:"sale_date"`

	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"discount_percent"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	SurchargePercent decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"surcharge_amount"`
	ShippingFee      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"shipping_fee"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	ChangeGiven      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"change_given"`

	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	Cancelled bool           `gorm:"default:false" json:"cancelled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []SaleLine    `gorm:"foreignKey:SaleID" json:"lines,omitempty"`
	Payments []SalePayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is one product entry on a sale
type SaleLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Sequence  int       `gorm:"not null" json:"sequence"`

	Quantity         decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"discount_percent"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	SurchargePercent decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"surcharge_amount"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale line
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}

// SalePayment is one tender applied to a sale.
// AmountApplied + ChangeGiven always equals AmountEntered.
type SalePayment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	InstrumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"instrument_id"`

	AmountEntered decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_entered"`
	AmountApplied decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_applied"`
	ChangeGiven   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"change_given"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Sale       Sale             `gorm:"foreignKey:SaleID" json:"-"`
	Instrument TenderInstrument `gorm:"foreignKey:InstrumentID" json:"instrument,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale payment
func (p *SalePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalePayment model
func (SalePayment) TableName() string {
	return "sale_payments"
}
