package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "plain line",
			line: Line{UnitPrice: dec("10.00"), Quantity: dec("3")},
			want: "30",
		},
		{
			name: "fractional quantity",
			line: Line{UnitPrice: dec("4.50"), Quantity: dec("0.5")},
			want: "2.25",
		},
		{
			name: "percent discount",
			line: Line{
				UnitPrice: dec("100"), Quantity: dec("1"),
				Discount: Adjustment{Percent: dec("10"), LastEdited: EditedPercent},
			},
			want: "90",
		},
		{
			name: "amount discount",
			line: Line{
				UnitPrice: dec("100"), Quantity: dec("1"),
				Discount: Adjustment{Amount: dec("15"), LastEdited: EditedAmount},
			},
			want: "85",
		},
		{
			name: "discount then percent surcharge applies to discounted value",
			line: Line{
				UnitPrice: dec("100"), Quantity: dec("1"),
				Discount:  Adjustment{Amount: dec("20"), LastEdited: EditedAmount},
				Surcharge: Adjustment{Percent: dec("10"), LastEdited: EditedPercent},
			},
			want: "88",
		},
		{
			name: "discount then amount surcharge layers independently",
			line: Line{
				UnitPrice: dec("100"), Quantity: dec("1"),
				Discount:  Adjustment{Amount: dec("20"), LastEdited: EditedAmount},
				Surcharge: Adjustment{Amount: dec("10"), LastEdited: EditedAmount},
			},
			want: "90",
		},
		{
			name: "both discount fields set directly apply stacked",
			line: Line{
				UnitPrice: dec("100"), Quantity: dec("1"),
				Discount: Adjustment{Percent: dec("10"), Amount: dec("10")},
			},
			want: "80",
		},
		{
			name: "discount over line value floors at zero",
			line: Line{
				UnitPrice: dec("5"), Quantity: dec("1"),
				Discount: Adjustment{Amount: dec("50"), LastEdited: EditedAmount},
			},
			want: "0",
		},
		{
			name: "negative price clamps to zero",
			line: Line{UnitPrice: dec("-10"), Quantity: dec("3")},
			want: "0",
		},
		{
			name: "negative quantity clamps to zero",
			line: Line{UnitPrice: dec("10"), Quantity: dec("-3")},
			want: "0",
		},
		{
			name: "negative discount clamps to zero before use",
			line: Line{
				UnitPrice: dec("10"), Quantity: dec("2"),
				Discount: Adjustment{Amount: dec("-5"), LastEdited: EditedAmount},
			},
			want: "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.line.Total()
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Total() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineTotalNeverNegative(t *testing.T) {
	lines := []Line{
		{UnitPrice: dec("-1"), Quantity: dec("-1")},
		{UnitPrice: dec("10"), Quantity: dec("1"), Discount: Adjustment{Percent: dec("500"), LastEdited: EditedPercent}},
		{UnitPrice: dec("10"), Quantity: dec("1"), Discount: Adjustment{Amount: dec("9999"), LastEdited: EditedAmount}},
		{UnitPrice: dec("0"), Quantity: dec("0"), Surcharge: Adjustment{Percent: dec("-50"), LastEdited: EditedPercent}},
	}
	for i, l := range lines {
		if got := l.Total(); got.IsNegative() {
			t.Errorf("line %d: Total() = %s, want >= 0", i, got)
		}
	}
}

func TestDiscountPercentAmountRoundTrip(t *testing.T) {
	line := Line{UnitPrice: dec("33.33"), Quantity: dec("3")}

	line.SetDiscountPercent(dec("12.5"))
	amount := line.Discount.Amount

	line.SetDiscountAmount(amount)
	got := line.Discount.Percent

	diff := got.Sub(dec("12.5")).Abs()
	if diff.GreaterThan(dec("0.01")) {
		t.Errorf("round-trip percent = %s, want 12.5 within 0.01", got)
	}
}

func TestSetDiscountDerivesFromPreDiscountBase(t *testing.T) {
	line := Line{UnitPrice: dec("10.00"), Quantity: dec("5")}

	line.SetDiscountPercent(dec("10"))
	if !line.Discount.Amount.Equal(dec("5")) {
		t.Errorf("derived amount = %s, want 5", line.Discount.Amount)
	}

	// Surcharge derivation also uses the pre-adjustment base, not the
	// discounted running value.
	line.SetSurchargePercent(dec("20"))
	if !line.Surcharge.Amount.Equal(dec("10")) {
		t.Errorf("derived surcharge amount = %s, want 10", line.Surcharge.Amount)
	}
}

func TestQuantityEditResyncsAuthoritativeSide(t *testing.T) {
	line := Line{UnitPrice: dec("10.00"), Quantity: dec("1")}
	line.SetDiscountPercent(dec("10"))

	line.SetQuantity(dec("4"))

	// Percent was edited last, so it stays and the amount follows the base.
	if !line.Discount.Percent.Equal(dec("10")) {
		t.Errorf("percent = %s, want 10", line.Discount.Percent)
	}
	if !line.Discount.Amount.Equal(dec("4")) {
		t.Errorf("amount = %s, want 4", line.Discount.Amount)
	}
	if !line.Total().Equal(dec("36")) {
		t.Errorf("total = %s, want 36", line.Total())
	}
}

func TestSaleTotalsStepOrder(t *testing.T) {
	lines := []Line{{UnitPrice: dec("10.00"), Quantity: dec("3")}}

	tests := []struct {
		name string
		adj  GlobalAdjustments
		want string
	}{
		{"no adjustments", GlobalAdjustments{}, "30"},
		{"percent discount", GlobalAdjustments{DiscountPercent: dec("10")}, "27"},
		{"flat discount after percent", GlobalAdjustments{DiscountPercent: dec("10"), DiscountAmount: dec("7")}, "20"},
		{"percent surcharge off discounted value", GlobalAdjustments{DiscountAmount: dec("10"), SurchargePercent: dec("10")}, "22"},
		{"flat surcharge", GlobalAdjustments{SurchargeAmount: dec("5")}, "35"},
		{"shipping last", GlobalAdjustments{DiscountPercent: dec("100"), ShippingFee: dec("12")}, "12"},
		{"discount beyond subtotal floors before surcharge", GlobalAdjustments{DiscountAmount: dec("100"), SurchargePercent: dec("50")}, "0"},
		{"negative shipping clamps", GlobalAdjustments{ShippingFee: dec("-5")}, "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SaleTotals(lines, tt.adj)
			if !got.GrandTotal.Equal(dec(tt.want)) {
				t.Errorf("GrandTotal = %s, want %s", got.GrandTotal, tt.want)
			}
			if got.GrandTotal.IsNegative() {
				t.Errorf("GrandTotal = %s, want >= 0", got.GrandTotal)
			}
		})
	}
}

// Discount-then-surcharge must differ from surcharge-then-discount for the
// same nonzero inputs, which pins the six-step order as significant.
func TestSaleTotalsOrderSensitivity(t *testing.T) {
	lines := []Line{{UnitPrice: dec("100"), Quantity: dec("1")}}

	fixed := SaleTotals(lines, GlobalAdjustments{
		DiscountAmount:   dec("50"),
		SurchargePercent: dec("10"),
	})
	// Fixed order: (100 - 50) * 1.10 = 55.
	if !fixed.GrandTotal.Equal(dec("55")) {
		t.Fatalf("GrandTotal = %s, want 55", fixed.GrandTotal)
	}
	// Surcharge first would give 100*1.10 - 50 = 60.
	if fixed.GrandTotal.Equal(dec("60")) {
		t.Fatal("adjustment steps appear to be reordered")
	}
}

func TestSaleTotalsIntermediates(t *testing.T) {
	lines := []Line{{UnitPrice: dec("50"), Quantity: dec("2")}}
	got := SaleTotals(lines, GlobalAdjustments{
		DiscountPercent:  dec("10"),
		SurchargeAmount:  dec("5"),
		ShippingFee:      dec("8"),
	})

	if !got.Subtotal.Equal(dec("100")) {
		t.Errorf("Subtotal = %s, want 100", got.Subtotal)
	}
	if !got.AfterDiscounts.Equal(dec("90")) {
		t.Errorf("AfterDiscounts = %s, want 90", got.AfterDiscounts)
	}
	if !got.AfterSurcharges.Equal(dec("95")) {
		t.Errorf("AfterSurcharges = %s, want 95", got.AfterSurcharges)
	}
	if !got.GrandTotal.Equal(dec("103")) {
		t.Errorf("GrandTotal = %s, want 103", got.GrandTotal)
	}
}
