package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/internal/domain/money"
)

// GlobalAdjustments are the sale-wide inputs applied on top of the line
// subtotal. Unlike line adjustments, the percent and amount fields here are
// independent values, not two views of one edit.
type GlobalAdjustments struct {
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `json:"surcharge_amount"`
	ShippingFee      decimal.Decimal `json:"shipping_fee"`
}

// Totals is the derived result of a full sale computation.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	// AfterDiscounts is the running value once both global discounts are in.
	AfterDiscounts decimal.Decimal `json:"after_discounts"`
	// AfterSurcharges is the running value once both global surcharges are in.
	AfterSurcharges decimal.Decimal `json:"after_surcharges"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// SaleTotals sums the line totals and applies the global adjustments in a
// fixed order: percent discount, flat discount, percent surcharge, flat
// surcharge, shipping fee. The running value is floored at zero between
// every step; reordering these steps changes the result whenever a discount
// and a surcharge are both nonzero.
func SaleTotals(lines []Line, adj GlobalAdjustments) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	running := subtotal
	running = money.Clamp0(running.Sub(money.Percent(running, money.Clamp0(adj.DiscountPercent))))
	running = money.Clamp0(running.Sub(money.Clamp0(adj.DiscountAmount)))
	afterDiscounts := running

	running = money.Clamp0(running.Add(money.Percent(running, money.Clamp0(adj.SurchargePercent))))
	running = money.Clamp0(running.Add(money.Clamp0(adj.SurchargeAmount)))
	afterSurcharges := running

	running = money.Clamp0(running.Add(money.Clamp0(adj.ShippingFee)))

	return Totals{
		Subtotal:        subtotal,
		AfterDiscounts:  afterDiscounts,
		AfterSurcharges: afterSurcharges,
		GrandTotal:      running,
	}
}
