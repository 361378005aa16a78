package request

// CreateProductRequest represents a create product request
type CreateProductRequest struct {
	Code         string   `json:"code" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Unit         string   `json:"unit"`
	SellingPrice float64  `json:"selling_price" binding:"required,gt=0"`
	CostPrice    float64  `json:"cost_price"`
	Stock        float64  `json:"stock"`
	MinStock     float64  `json:"min_stock"`
	TrackStock   *bool    `json:"track_stock"`
	Notes        *string  `json:"notes"`
	AltCodes     []string `json:"alt_codes"`
}

// UpdateProductRequest represents an update product request
type UpdateProductRequest struct {
	Description  *string  `json:"description"`
	Unit         *string  `json:"unit"`
	SellingPrice *float64 `json:"selling_price"`
	CostPrice    *float64 `json:"cost_price"`
	Stock        *float64 `json:"stock"`
	MinStock     *float64 `json:"min_stock"`
	TrackStock   *bool    `json:"track_stock"`
	Active       *bool    `json:"active"`
	Notes        *string  `json:"notes"`
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}
