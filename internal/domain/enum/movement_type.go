package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MovementType classifies an entry in the cash-drawer ledger. Movements are
// append-only: cancelling a sale writes an inverse Reversal entry instead of
// editing the original Sale movement.
type MovementType int

const (
	MovementSale       MovementType = 0
	MovementSupply     MovementType = 1
	MovementWithdrawal MovementType = 2
	MovementReversal   MovementType = 3
)

func (t MovementType) String() string {
	names := [...]string{"Sale", "Supply", "Withdrawal", "Reversal"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Sale"
	}
	return names[t]
}

func (t MovementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = MovementType(i)
		return nil
	}
	switch str {
	case "Sale":
		*t = MovementSale
	case "Supply":
		*t = MovementSupply
	case "Withdrawal":
		*t = MovementWithdrawal
	case "Reversal":
		*t = MovementReversal
	}
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementSale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = MovementType(v)
	case int:
		*t = MovementType(v)
	}
	return nil
}
