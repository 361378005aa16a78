// Package pricing implements the sale totals calculator: per-line totals with
// percent/amount discounts and surcharges, and the global adjustment chain
// applied to the sale subtotal. Everything here is pure arithmetic on
// decimals; all inputs must already be finite (money.FromFloat gates floats
// at the API boundary) and negative inputs clamp silently to zero.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/internal/domain/money"
)

// EditedField records which half of a percent/amount pair the operator
// touched last. The pair is two views of one adjustment: editing either side
// re-derives the other from the pre-adjustment base, and when the base itself
// changes the last-edited side stays authoritative.
type EditedField int

const (
	EditedNone EditedField = iota
	EditedPercent
	EditedAmount
)

// Adjustment is one discount or surcharge expressed both as a percent and as
// a flat currency amount.
type Adjustment struct {
	Percent    decimal.Decimal `json:"percent"`
	Amount     decimal.Decimal `json:"amount"`
	LastEdited EditedField     `json:"-"`
}

// SetPercent records a percent edit and derives the amount form from the
// pre-adjustment base.
func (a *Adjustment) SetPercent(base, pct decimal.Decimal) {
	a.Percent = money.Clamp0(pct)
	a.Amount = money.Percent(money.Clamp0(base), a.Percent)
	a.LastEdited = EditedPercent
}

// SetAmount records an amount edit and derives the percent form from the
// pre-adjustment base. A zero base yields a zero percent.
func (a *Adjustment) SetAmount(base, amount decimal.Decimal) {
	a.Amount = money.Clamp0(amount)
	a.Percent = money.PercentOf(a.Amount, money.Clamp0(base))
	a.LastEdited = EditedAmount
}

// Resync re-derives the non-authoritative side after the base changed
// (quantity or unit price edits). An untouched pair stays untouched.
func (a *Adjustment) Resync(base decimal.Decimal) {
	switch a.LastEdited {
	case EditedPercent:
		a.Amount = money.Percent(money.Clamp0(base), a.Percent)
	case EditedAmount:
		a.Percent = money.PercentOf(a.Amount, money.Clamp0(base))
	}
}

// IsZero reports whether the adjustment has no effect.
func (a Adjustment) IsZero() bool {
	return !a.Percent.IsPositive() && !a.Amount.IsPositive()
}
