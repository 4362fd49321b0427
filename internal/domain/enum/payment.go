package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the settlement state of a plan payment
type PaymentStatus int

const (
	PaymentStatusPaid     PaymentStatus = 0
	PaymentStatusPending  PaymentStatus = 1
	PaymentStatusApproved PaymentStatus = 2
	PaymentStatusFailed   PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	return [...]string{"paid", "pending", "approved", "failed"}[s]
}

// CountsAsPaid reports whether the payment contributes to settled totals
func (s PaymentStatus) CountsAsPaid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusApproved
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "paid":
		*s = PaymentStatusPaid
	case "pending":
		*s = PaymentStatusPending
	case "approved":
		*s = PaymentStatusApproved
	case "failed":
		*s = PaymentStatusFailed
	}
	return nil
}

// ParsePaymentStatus converts a request string to a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "paid":
		return PaymentStatusPaid, true
	case "pending":
		return PaymentStatusPending, true
	case "approved":
		return PaymentStatusApproved, true
	case "failed":
		return PaymentStatusFailed, true
	}
	return PaymentStatus(-1), false
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}

// PaymentMethod represents how a plan payment was made
type PaymentMethod int

const (
	PaymentMethodCard    PaymentMethod = 0
	PaymentMethodBank    PaymentMethod = 1
	PaymentMethodWallet  PaymentMethod = 2
	PaymentMethodReceipt PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	return [...]string{"card", "bank", "wallet", "receipt"}[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "card":
		*m = PaymentMethodCard
	case "bank":
		*m = PaymentMethodBank
	case "wallet":
		*m = PaymentMethodWallet
	case "receipt":
		*m = PaymentMethodReceipt
	}
	return nil
}

// ParsePaymentMethod converts a request string to a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "card":
		return PaymentMethodCard, true
	case "bank":
		return PaymentMethodBank, true
	case "wallet":
		return PaymentMethodWallet, true
	case "receipt":
		return PaymentMethodReceipt, true
	}
	return PaymentMethod(-1), false
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCard
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
