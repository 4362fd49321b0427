package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptStatus represents the review state of an uploaded receipt
type ReceiptStatus int

const (
	ReceiptStatusPending  ReceiptStatus = 0
	ReceiptStatusApproved ReceiptStatus = 1
	ReceiptStatusRejected ReceiptStatus = 2
)

func (s ReceiptStatus) String() string {
	return [...]string{"pending", "approved", "rejected"}[s]
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = ReceiptStatusPending
	case "approved":
		*s = ReceiptStatusApproved
	case "rejected":
		*s = ReceiptStatusRejected
	}
	return nil
}

// ParseReceiptStatus converts a request string to a ReceiptStatus
func ParseReceiptStatus(s string) (ReceiptStatus, bool) {
	switch s {
	case "pending":
		return ReceiptStatusPending, true
	case "approved":
		return ReceiptStatusApproved, true
	case "rejected":
		return ReceiptStatusRejected, true
	}
	return ReceiptStatus(-1), false
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptStatus(v)
	case int:
		*s = ReceiptStatus(v)
	}
	return nil
}
