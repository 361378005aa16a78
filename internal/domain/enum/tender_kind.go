package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TenderKind classifies a payment instrument for validation branching:
// cash-equivalent kinds may overpay and produce change, every other kind is
// capped at the remaining balance.
type TenderKind int

const (
	TenderKindCash       TenderKind = 0
	TenderKindCreditCard TenderKind = 1
	TenderKindDebitCard  TenderKind = 2
	TenderKindTransfer   TenderKind = 3
	TenderKindVoucher    TenderKind = 4
	TenderKindOther      TenderKind = 5
)

func (k TenderKind) String() string {
	names := [...]string{"Cash", "CreditCard", "DebitCard", "Transfer", "Voucher", "Other"}
	if int(k) < 0 || int(k) >= len(names) {
		return "Other"
	}
	return names[k]
}

// Code returns the fiscal payment-type code carried on receipts and sale
// submissions ("01" cash, "03" credit, "04" debit, "17" transfer/PIX, ...).
func (k TenderKind) Code() string {
	codes := [...]string{"01", "03", "04", "17", "05", "99"}
	if int(k) < 0 || int(k) >= len(codes) {
		return "99"
	}
	return codes[k]
}

// CashEquivalent reports whether overpayment on this kind yields change.
// Only physical cash does; cards, transfers and vouchers are rejected when
// they exceed the remaining balance.
func (k TenderKind) CashEquivalent() bool {
	return k == TenderKindCash
}

// ParseTenderKindCode maps a fiscal payment-type code back to a kind.
// Unknown codes map to TenderKindOther.
func ParseTenderKindCode(code string) TenderKind {
	switch code {
	case "01":
		return TenderKindCash
	case "03":
		return TenderKindCreditCard
	case "04":
		return TenderKindDebitCard
	case "17":
		return TenderKindTransfer
	case "05":
		return TenderKindVoucher
	default:
		return TenderKindOther
	}
}

func (k TenderKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the kind name, the fiscal payment-type code, or the
// raw int, so clients may send whichever spelling they carry.
func (k *TenderKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = TenderKind(i)
		return nil
	}
	switch str {
	case "Cash":
		*k = TenderKindCash
	case "CreditCard":
		*k = TenderKindCreditCard
	case "DebitCard":
		*k = TenderKindDebitCard
	case "Transfer":
		*k = TenderKindTransfer
	case "Voucher":
		*k = TenderKindVoucher
	default:
		*k = ParseTenderKindCode(str)
	}
	return nil
}

func (k TenderKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *TenderKind) Scan(value interface{}) error {
	if value == nil {
		*k = TenderKindCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = TenderKind(v)
	case int:
		*k = TenderKind(v)
	}
	return nil
}
