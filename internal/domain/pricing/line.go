package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/internal/domain/money"
)

// Line is one product entry in the in-progress sale.
type Line struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Discount  Adjustment      `json:"discount"`
	Surcharge Adjustment      `json:"surcharge"`
}

// Base returns the pre-adjustment line subtotal (unitPrice * quantity),
// with both factors clamped at zero.
func (l Line) Base() decimal.Decimal {
	return money.Clamp0(l.UnitPrice).Mul(money.Clamp0(l.Quantity))
}

// effective returns the percent and amount sides that actually feed the total
// formula. A mutually derived pair counts once, through its authoritative
// side; a pair whose fields were set directly (no edit recorded) applies both
// stacked.
func (a Adjustment) effective() (pct, amount decimal.Decimal) {
	switch a.LastEdited {
	case EditedPercent:
		return money.Clamp0(a.Percent), decimal.Zero
	case EditedAmount:
		return decimal.Zero, money.Clamp0(a.Amount)
	default:
		return money.Clamp0(a.Percent), money.Clamp0(a.Amount)
	}
}

// Total computes the line total:
//
//	max(0, ((unitPrice*quantity) * (1 - discount%/100) - discount$) * (1 + surcharge%/100) + surcharge$)
//
// Negative inputs clamp to zero before use; the result is floored at zero.
// This never returns an error: malformed numbers are the caller's problem to
// reject before they get here.
func (l Line) Total() decimal.Decimal {
	total := l.Base()

	dp, da := l.Discount.effective()
	total = total.Sub(money.Percent(total, dp))
	total = total.Sub(da)

	sp, sa := l.Surcharge.effective()
	total = total.Add(money.Percent(total, sp))
	total = total.Add(sa)

	return money.Clamp0(total)
}

// SetQuantity updates the quantity (clamped at zero) and re-derives the
// dependent side of each adjustment pair against the new base.
func (l *Line) SetQuantity(qty decimal.Decimal) {
	l.Quantity = money.Clamp0(qty)
	l.Discount.Resync(l.Base())
	l.Surcharge.Resync(l.Base())
}

// SetUnitPrice updates the unit price (clamped at zero) and re-derives the
// dependent side of each adjustment pair against the new base.
func (l *Line) SetUnitPrice(price decimal.Decimal) {
	l.UnitPrice = money.Clamp0(price)
	l.Discount.Resync(l.Base())
	l.Surcharge.Resync(l.Base())
}

// SetDiscountPercent records a discount edit by percent.
func (l *Line) SetDiscountPercent(pct decimal.Decimal) {
	l.Discount.SetPercent(l.Base(), pct)
}

// SetDiscountAmount records a discount edit by flat amount.
func (l *Line) SetDiscountAmount(amount decimal.Decimal) {
	l.Discount.SetAmount(l.Base(), amount)
}

// SetSurchargePercent records a surcharge edit by percent.
func (l *Line) SetSurchargePercent(pct decimal.Decimal) {
	l.Surcharge.SetPercent(l.Base(), pct)
}

// SetSurchargeAmount records a surcharge edit by flat amount.
func (l *Line) SetSurchargeAmount(amount decimal.Decimal) {
	l.Surcharge.SetAmount(l.Base(), amount)
}
