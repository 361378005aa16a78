package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

func TestFromFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FromFloat(f); !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("FromFloat(%v): err = %v, want ErrInvalidInput", f, err)
		}
	}

	d, err := FromFloat(12.5)
	if err != nil {
		t.Fatalf("FromFloat(12.5): %v", err)
	}
	if !d.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("FromFloat(12.5) = %s", d)
	}
}

func TestClamp0(t *testing.T) {
	if got := Clamp0(decimal.NewFromInt(-3)); !got.IsZero() {
		t.Errorf("Clamp0(-3) = %s, want 0", got)
	}
	if got := Clamp0(decimal.NewFromInt(3)); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Clamp0(3) = %s, want 3", got)
	}
}

func TestSettledTolerance(t *testing.T) {
	tests := []struct {
		balance string
		want    bool
	}{
		{"0", true},
		{"0.01", true},
		{"-0.50", true},
		{"0.02", false},
		{"1.00", false},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.balance)
		if got := Settled(d); got != tt.want {
			t.Errorf("Settled(%s) = %v, want %v", tt.balance, got, tt.want)
		}
	}
}

func TestPercentOf(t *testing.T) {
	base := decimal.NewFromInt(200)
	part := decimal.NewFromInt(50)

	if got := PercentOf(part, base); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("PercentOf(50, 200) = %s, want 25", got)
	}
	if got := PercentOf(part, decimal.Zero); !got.IsZero() {
		t.Errorf("PercentOf(50, 0) = %s, want 0", got)
	}

	// Percent and PercentOf round-trip on a positive base.
	pct := PercentOf(part, base)
	if got := Percent(base, pct); !got.Equal(part) {
		t.Errorf("Percent(200, %s) = %s, want 50", pct, got)
	}
}
