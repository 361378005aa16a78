package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellista/pos-checkout-api/internal/domain/enum"
)

// TenderInstrument is one configured payment instrument offered at the
// register. Kind drives the payment workflow's validation branching.
type TenderInstrument struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Description        string          `gorm:"size:255;not null" json:"description"`
	Kind               enum.TenderKind `gorm:"default:0;index" json:"kind"`
	AllowsInstallments bool            `gorm:"default:false" json:"allows_installments"`
	Active             bool            `gorm:"default:true" json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new instrument
func (t *TenderInstrument) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TenderInstrument model
func (TenderInstrument) TableName() string {
	return "tender_instruments"
}
