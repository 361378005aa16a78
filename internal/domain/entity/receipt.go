package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a coupon.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Document  string `json:"document,omitempty"`
}

// ReceiptItem represents a single line item on a coupon. Quantity is a
// string so weighted goods print fractional amounts as entered.
type ReceiptItem struct {
	Quantity  string          `json:"quantity"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptPayment is one tender line on a coupon, tagged with the fiscal
// payment-type code of its instrument kind.
type ReceiptPayment struct {
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Amount      decimal.Decimal `json:"amount"`
}

// Receipt is a value object representing a printable sale coupon.
// It is NOT a database entity; it is composed from sale data at print time.
type Receipt struct {
	Header     ReceiptHeader    `json:"header"`
	DocumentNo string           `json:"document_no"`
	Date       string           `json:"date"`
	Cashier    string           `json:"cashier,omitempty"`
	Customer   string           `json:"customer,omitempty"`
	Items      []ReceiptItem    `json:"items"`
	SubTotal   decimal.Decimal  `json:"sub_total"`
	Discount   decimal.Decimal  `json:"discount"`
	Surcharge  decimal.Decimal  `json:"surcharge"`
	Shipping   decimal.Decimal  `json:"shipping"`
	Total      decimal.Decimal  `json:"total"`
	Payments   []ReceiptPayment `json:"payments"`
	Paid       decimal.Decimal  `json:"paid"`
	Change     decimal.Decimal  `json:"change"`
	Footer     string           `json:"footer,omitempty"`
}
