package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashSessionStatus represents the state of a till session
type CashSessionStatus int

const (
	CashSessionOpen   CashSessionStatus = 0
	CashSessionClosed CashSessionStatus = 1
)

func (s CashSessionStatus) String() string {
	names := [...]string{"Open", "Closed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Closed"
	}
	return names[s]
}

func (s CashSessionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CashSessionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CashSessionStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = CashSessionOpen
	case "Closed":
		*s = CashSessionClosed
	}
	return nil
}

func (s CashSessionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CashSessionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CashSessionClosed
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CashSessionStatus(v)
	case int:
		*s = CashSessionStatus(v)
	}
	return nil
}
