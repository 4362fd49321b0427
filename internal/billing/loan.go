package billing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
)

// LoanedAmount resolves the financed principal for an item.
// An explicitly stored loaned amount wins; otherwise the principal is
// derived from the best available price field minus the down payment.
// Legacy rows carry the price in total_price instead of phone_price.
func LoanedAmount(item *entity.FinancedItem) decimal.Decimal {
	if v := item.LoanedAmount; v != nil && isFinite(*v) {
		return maxZero(decimal.NewFromFloat(*v))
	}

	price := resolveFirst(item.PhonePrice, item.LegacyTotalPrice)
	down := maxZero(decimal.NewFromFloat(item.DownPayment))
	return maxZero(price.Sub(down))
}

// resolveFirst returns the first finite candidate, or zero when none is usable.
func resolveFirst(candidates ...*float64) decimal.Decimal {
	for _, c := range candidates {
		if c != nil && isFinite(*c) {
			return decimal.NewFromFloat(*c)
		}
	}
	return decimal.Zero
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
