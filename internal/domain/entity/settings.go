package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings is the single-row store configuration used by the
// register and the receipt printer.
type CompanySettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TradeName     string    `gorm:"size:255;not null" json:"trade_name"`
	LegalName     *string   `gorm:"size:255" json:"legal_name,omitempty"`
	Document      *string   `gorm:"size:50" json:"document,omitempty"`
	Address       *string   `gorm:"type:text" json:"address,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	ReceiptFooter *string   `gorm:"type:text" json:"receipt_footer,omitempty"`

	// ControlTill gates sale finalization on an open cash session.
	ControlTill bool `gorm:"default:true" json:"control_till"`
	// DefaultCustomerID is attached to sales created with no customer.
	DefaultCustomerID *uuid.UUID `gorm:"type:uuid" json:"default_customer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating settings
func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
