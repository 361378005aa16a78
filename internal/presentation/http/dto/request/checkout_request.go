package request

import "github.com/sellista/pos-checkout-api/internal/domain/enum"

// AddItemRequest adds a product to the register cart by code or barcode.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	Code     string  `json:"code" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// EditLineRequest applies a single-field edit to a cart line
type EditLineRequest struct {
	Field string  `json:"field" binding:"required,oneof=quantity unit_price discount_percent discount_amount surcharge_percent surcharge_amount"`
	Value float64 `json:"value"`
}

// GlobalAdjustmentsRequest updates the sale-wide adjustment fields; fields
// left out of the payload are unchanged.
type GlobalAdjustmentsRequest struct {
	DiscountPercent  *float64 `json:"discount_percent"`
	DiscountAmount   *float64 `json:"discount_amount"`
	SurchargePercent *float64 `json:"surcharge_percent"`
	SurchargeAmount  *float64 `json:"surcharge_amount"`
	ShippingFee      *float64 `json:"shipping_fee"`
}

// SetCustomerRequest binds a customer to the register; null clears it
type SetCustomerRequest struct {
	CustomerID *string `json:"customer_id" binding:"omitempty,uuid"`
}

// SetNotesRequest attaches free-form notes to the in-progress sale
type SetNotesRequest struct {
	Notes *string `json:"notes"`
}

// SelectTenderKindRequest starts a tender entry for the given kind
type SelectTenderKindRequest struct {
	Kind enum.TenderKind `json:"kind"`
}

// ChooseInstrumentRequest resolves an ambiguous kind selection
type ChooseInstrumentRequest struct {
	InstrumentID string `json:"instrument_id" binding:"required,uuid"`
}

// SubmitAmountRequest applies a tender amount through the bound instrument.
// No binding constraint on the amount: zero and negative values must reach
// the workflow so it can answer with its own rejection.
type SubmitAmountRequest struct {
	Amount float64 `json:"amount"`
}
