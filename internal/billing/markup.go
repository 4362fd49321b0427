package billing

import (
	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

var (
	weeklyMarkups = map[int]decimal.Decimal{
		4:  decimal.RequireFromString("1.2"),
		8:  decimal.RequireFromString("1.4"),
		12: decimal.RequireFromString("1.5"),
	}
	monthlyMarkups = map[int]decimal.Decimal{
		1: decimal.RequireFromString("1.2"),
		2: decimal.RequireFromString("1.4"),
		3: decimal.RequireFromString("1.6"),
	}
	noMarkup = decimal.NewFromInt(1)
)

// MarkupMultiplier returns the factor applied to a loaned principal to
// obtain the total payable over the life of the plan. Unsupported cycle
// counts carry no markup.
func MarkupMultiplier(kind enum.PlanKind, cycles int) decimal.Decimal {
	switch kind {
	case enum.PlanKindWeekly:
		if m, ok := weeklyMarkups[cycles]; ok {
			return m
		}
	case enum.PlanKindMonthly:
		if m, ok := monthlyMarkups[cycles]; ok {
			return m
		}
	}
	return noMarkup
}
