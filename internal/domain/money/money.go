package money

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

// Epsilon is the settlement tolerance for payment balances: a sale counts as
// fully paid once the remaining balance is at or below one cent.
var Epsilon = decimal.New(1, -2)

// Zero is the zero currency amount.
var Zero = decimal.Zero

// Hundred is used for percent conversions.
var Hundred = decimal.New(100, 0)

// FromFloat converts an already-parsed float into a currency decimal.
// NaN and ±Inf are rejected with apperror.ErrInvalidInput; the pricing and
// payment engines only ever see finite values.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, apperror.ErrInvalidInput
	}
	return decimal.NewFromFloat(f), nil
}

// Clamp0 floors a value at zero. Negative monetary inputs are not errors in
// the register: they silently clamp to zero before any computation uses them.
func Clamp0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Round2 rounds to two decimal places, the precision everything is displayed
// and persisted at.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Settled reports whether a remaining balance is within the settlement
// tolerance.
func Settled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(Epsilon)
}

// Percent returns base * pct / 100.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(Hundred)
}

// PercentOf returns the percentage that part represents of base, or zero when
// base is not positive.
func PercentOf(part, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return part.Div(base).Mul(Hundred)
}
