package request

// SaleLineRequest is one line of a direct sale submission
type SaleLineRequest struct {
	ProductID        string   `json:"product_id" binding:"required,uuid"`
	Quantity         float64  `json:"quantity" binding:"required,gt=0"`
	UnitPrice        *float64 `json:"unit_price"`
	DiscountPercent  float64  `json:"discount_percent"`
	DiscountAmount   float64  `json:"discount_amount"`
	SurchargePercent float64  `json:"surcharge_percent"`
	SurchargeAmount  float64  `json:"surcharge_amount"`
}

// SaleTenderRequest is one tender of a direct sale submission
type SaleTenderRequest struct {
	InstrumentID string  `json:"instrument_id" binding:"required,uuid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// CreateSaleRequest represents a complete sale submitted in one shot.
// Totals are recomputed server-side; the client's arithmetic is never
// trusted.
type CreateSaleRequest struct {
	CustomerID       *string             `json:"customer_id" binding:"omitempty,uuid"`
	Notes            *string             `json:"notes"`
	Lines            []SaleLineRequest   `json:"lines" binding:"required,min=1,dive"`
	DiscountPercent  float64             `json:"discount_percent"`
	DiscountAmount   float64             `json:"discount_amount"`
	SurchargePercent float64             `json:"surcharge_percent"`
	SurchargeAmount  float64             `json:"surcharge_amount"`
	ShippingFee      float64             `json:"shipping_fee"`
	Tenders          []SaleTenderRequest `json:"tenders" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale list query parameters
type SaleFilterRequest struct {
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	CustomerID string `form:"customer_id"`
	SessionID  string `form:"session_id"`
	Cancelled  *bool  `form:"cancelled"`
}
