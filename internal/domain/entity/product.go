package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable item
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code         string          `gorm:"size:100;unique;not null" json:"code"`
	Description  string          `gorm:"size:255;not null" json:"description"`
	Unit         string          `gorm:"size:10;default:'UN'" json:"unit"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cost_price"`
	// Stock is a decimal so weighted goods can carry fractional quantities.
	Stock      decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"stock"`
	MinStock   decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"min_stock"`
	TrackStock bool            `gorm:"default:true" json:"track_stock"`
	Active     bool            `gorm:"default:true" json:"active"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	AltCodes []ProductAltCode `gorm:"foreignKey:ProductID" json:"alt_codes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductAltCode is an alternative barcode for a product (supplier codes,
// pack barcodes, scale labels)
type ProductAltCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Code      string    `gorm:"size:100;not null;index" json:"code"`
	Label     *string   `gorm:"size:255" json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new alternative code
func (c *ProductAltCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductAltCode model
func (ProductAltCode) TableName() string {
	return "product_alt_codes"
}
