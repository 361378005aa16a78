package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellista/pos-checkout-api/internal/domain/enum"
)

// CashSession represents one open/close accounting period of the till.
// At most one session is open at a time.
type CashSession struct {
	ID       uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	Status   enum.CashSessionStatus `gorm:"default:0;index" json:"status"`
	OpenedAt time.Time              `gorm:"not null" json:"opened_at"`
	ClosedAt *time.Time             `json:"closed_at,omitempty"`

	OpeningAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_amount"`
	SalesTotal      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"sales_total"`
	SupplyTotal     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"supply_total"`
	WithdrawalTotal decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"withdrawal_total"`

	// ExpectedAmount is computed on close: opening + cash sales + supplies - withdrawals.
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_amount,omitempty"`
	DeclaredAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"declared_amount,omitempty"`
	Deviation      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"deviation,omitempty"`

	Notes        *string        `gorm:"type:text" json:"notes,omitempty"`
	ClosingNotes *string        `gorm:"type:text" json:"closing_notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Movements []CashMovement `gorm:"foreignKey:CashSessionID" json:"movements,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// CashMovement is an append-only entry in the till ledger. Sale
// cancellations write an inverse Reversal entry; nothing is ever edited.
type CashMovement struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CashSessionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"cash_session_id"`
	Type          enum.MovementType `gorm:"not null" json:"type"`
	Amount        decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description   string            `gorm:"size:255;not null" json:"description"`
	// ReferenceID links back to the originating sale, if any.
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	CashSession CashSession `gorm:"foreignKey:CashSessionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *CashMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashMovement model
func (CashMovement) TableName() string {
	return "cash_movements"
}
