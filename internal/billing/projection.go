package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// ItemSchedule is the projected billing state of a single financed item
// at a point in time. It has no persisted identity.
type ItemSchedule struct {
	ItemID            uuid.UUID
	PlanKind          enum.PlanKind
	CycleCount        int
	ElapsedCycles     int
	Loan              decimal.Decimal
	Markup            decimal.Decimal
	NextInstallment   decimal.Decimal
	TotalPayable      decimal.Decimal
	DueToDate         decimal.Decimal
	DownPayment       decimal.Decimal
	PhonePrice        decimal.Decimal
	NextDueDate       *time.Time
	Excluded          bool
}

// ProjectItem computes the schedule for one item. Items with an unknown
// plan kind, a non-positive cycle count, or a non-positive loan are
// marked excluded and contribute zero to every aggregate.
func ProjectItem(item *entity.FinancedItem, now time.Time) ItemSchedule {
	schedule := ItemSchedule{
		ItemID:      item.ID,
		PlanKind:    item.PlanKind,
		DownPayment: maxZero(decimal.NewFromFloat(item.DownPayment)),
		PhonePrice:  resolveFirst(item.PhonePrice, item.LegacyTotalPrice),
	}

	cycles := item.CycleCount()
	loan := LoanedAmount(item)
	if !item.PlanKind.IsValid() || cycles <= 0 || !loan.IsPositive() {
		schedule.Excluded = true
		return schedule
	}

	anchor := item.AnchorDate()
	markup := MarkupMultiplier(item.PlanKind, cycles)
	totalPayable := loan.Mul(markup)
	installment := totalPayable.Div(decimal.NewFromInt(int64(cycles)))
	elapsed := ElapsedCycles(anchor, item.PlanKind, cycles, now)

	schedule.CycleCount = cycles
	schedule.ElapsedCycles = elapsed
	schedule.Loan = loan
	schedule.Markup = markup
	schedule.NextInstallment = installment
	schedule.TotalPayable = totalPayable
	schedule.DueToDate = installment.Mul(decimal.NewFromInt(int64(elapsed)))
	schedule.NextDueDate = NextDueDate(anchor, item.PlanKind, cycles, now)
	return schedule
}
