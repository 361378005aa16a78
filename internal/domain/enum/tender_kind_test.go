package enum

import (
	"encoding/json"
	"testing"
)

func TestTenderKindUnmarshalAcceptsNamesAndFiscalCodes(t *testing.T) {
	tests := []struct {
		payload string
		want    TenderKind
	}{
		{`"Cash"`, TenderKindCash},
		{`"01"`, TenderKindCash},
		{`"03"`, TenderKindCreditCard},
		{`"04"`, TenderKindDebitCard},
		{`"17"`, TenderKindTransfer},
		{`"05"`, TenderKindVoucher},
		{`2`, TenderKindDebitCard},
		{`"banana"`, TenderKindOther},
	}
	for _, tt := range tests {
		var k TenderKind
		if err := json.Unmarshal([]byte(tt.payload), &k); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.payload, err)
		}
		if k != tt.want {
			t.Errorf("Unmarshal(%s) = %s, want %s", tt.payload, k, tt.want)
		}
	}
}

func TestTenderKindCodeRoundTrip(t *testing.T) {
	kinds := []TenderKind{
		TenderKindCash, TenderKindCreditCard, TenderKindDebitCard,
		TenderKindTransfer, TenderKindVoucher,
	}
	for _, k := range kinds {
		if got := ParseTenderKindCode(k.Code()); got != k {
			t.Errorf("ParseTenderKindCode(%s) = %s, want %s", k.Code(), got, k)
		}
	}
}
