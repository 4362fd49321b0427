package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PlanKind represents the billing cadence of a financed item
type PlanKind int

const (
	PlanKindWeekly  PlanKind = 0
	PlanKindMonthly PlanKind = 1
)

// Interval lengths are fixed-length approximations, not calendar aware.
const (
	WeeklyIntervalDays  = 7
	MonthlyIntervalDays = 30
)

func (k PlanKind) String() string {
	switch k {
	case PlanKindWeekly:
		return "Weekly"
	case PlanKindMonthly:
		return "Monthly"
	}
	return "Unknown"
}

// IsValid reports whether the plan kind is a recognised value
func (k PlanKind) IsValid() bool {
	return k == PlanKindWeekly || k == PlanKindMonthly
}

// IntervalDays returns the length of one billing cycle in days
func (k PlanKind) IntervalDays() int {
	if k == PlanKindMonthly {
		return MonthlyIntervalDays
	}
	return WeeklyIntervalDays
}

func (k PlanKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PlanKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = PlanKind(i)
		return nil
	}
	switch str {
	case "Weekly":
		*k = PlanKindWeekly
	case "Monthly":
		*k = PlanKindMonthly
	}
	return nil
}

// ParsePlanKind converts a request string to a PlanKind.
// The second return value reports whether the input was recognised.
func ParsePlanKind(s string) (PlanKind, bool) {
	switch s {
	case "Weekly":
		return PlanKindWeekly, true
	case "Monthly":
		return PlanKindMonthly, true
	}
	return PlanKind(-1), false
}

func (k PlanKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *PlanKind) Scan(value interface{}) error {
	if value == nil {
		*k = PlanKindWeekly
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = PlanKind(v)
	case int:
		*k = PlanKind(v)
	}
	return nil
}
