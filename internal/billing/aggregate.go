package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// Snapshot is the externally visible dashboard state for one customer.
// All amounts stay unrounded until externalization.
type Snapshot struct {
	TotalAmount       decimal.Decimal
	TotalPaid         decimal.Decimal
	RemainingBalance  decimal.Decimal
	OwedAmount        decimal.Decimal
	Progress          decimal.Decimal
	NextPaymentDue    *time.Time
	NextPaymentAmount decimal.Decimal
	PlanStatus        string
	RecentPayments    []HistoryEntry
}

// HistoryEntry is one normalized recent-payment row.
type HistoryEntry struct {
	Amount decimal.Decimal
	Status enum.PaymentStatus
	Method enum.PaymentMethod
	PaidAt time.Time
}

const recentPaymentLimit = 10

// Aggregate folds per-item schedules and approved receipts into a
// dashboard snapshot. Only approved receipts participate; callers pass
// plan payments separately so legacy payment history still surfaces.
func Aggregate(items []*entity.FinancedItem, receipts []*entity.Receipt, payments []*entity.PlanPayment, now time.Time) Snapshot {
	schedules := make([]ItemSchedule, 0, len(items))
	for _, item := range items {
		schedules = append(schedules, ProjectItem(item, now))
	}

	var (
		scheduledDueToDate = decimal.Zero
		totalPhonePrice    = decimal.Zero
		totalDownPayment   = decimal.Zero
		totalSupposed      = decimal.Zero
	)
	for _, s := range schedules {
		if s.Excluded {
			continue
		}
		scheduledDueToDate = scheduledDueToDate.Add(s.DueToDate)
		totalPhonePrice = totalPhonePrice.Add(s.PhonePrice)
		totalDownPayment = totalDownPayment.Add(s.DownPayment)
		totalSupposed = totalSupposed.Add(s.DownPayment).Add(s.TotalPayable)
	}

	approvedTotal := decimal.Zero
	for _, r := range receipts {
		if r.Status != enum.ReceiptStatusApproved {
			continue
		}
		approvedTotal = approvedTotal.Add(maxZero(decimal.NewFromFloat(r.Amount)))
	}

	totalPaid := totalDownPayment.Add(approvedTotal)
	remaining := maxZero(totalSupposed.Sub(totalPaid))

	owed := maxZero(scheduledDueToDate.Sub(approvedTotal))
	if owed.GreaterThan(remaining) {
		owed = remaining
	}

	dueDate, dueAmount, dueKind := upcomingDue(schedules)
	if dueDate != nil {
		credit := currentCycleCredit(receipts, dueKind, *dueDate)
		adjusted := ApplyReceiptCredit(dueAmount, dueDate, credit, dueKind)
		dueAmount = adjusted.NextPaymentAmount
		dueDate = adjusted.NextPaymentDue
	}

	progress := decimal.Zero
	if totalSupposed.IsPositive() {
		hundred := decimal.NewFromInt(100)
		progress = totalPaid.Div(totalSupposed).Mul(hundred)
		if progress.GreaterThan(hundred) {
			progress = hundred
		}
	}

	status := "completed"
	if remaining.IsPositive() {
		status = "active"
	}

	return Snapshot{
		TotalAmount:       totalPhonePrice,
		TotalPaid:         totalPaid,
		RemainingBalance:  remaining,
		OwedAmount:        owed,
		Progress:          progress,
		NextPaymentDue:    dueDate,
		NextPaymentAmount: dueAmount,
		PlanStatus:        status,
		RecentPayments:    recentHistory(payments, receipts),
	}
}

// upcomingDue finds the earliest pending due date and sums the
// installments of every item due on that same calendar day.
func upcomingDue(schedules []ItemSchedule) (*time.Time, decimal.Decimal, enum.PlanKind) {
	var (
		earliest *time.Time
		kind     enum.PlanKind
	)
	for i := range schedules {
		s := &schedules[i]
		if s.Excluded || s.NextDueDate == nil {
			continue
		}
		if earliest == nil || s.NextDueDate.Before(*earliest) {
			earliest = s.NextDueDate
			kind = s.PlanKind
		}
	}
	if earliest == nil {
		return nil, decimal.Zero, enum.PlanKind(-1)
	}

	amount := decimal.Zero
	for i := range schedules {
		s := &schedules[i]
		if s.Excluded || s.NextDueDate == nil {
			continue
		}
		if sameDay(*s.NextDueDate, *earliest) {
			amount = amount.Add(s.NextInstallment)
		}
	}
	return earliest, amount, kind
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// currentCycleCredit sums approved receipts for the due plan whose
// approval falls inside the cycle window ending at nextDue.
func currentCycleCredit(receipts []*entity.Receipt, kind enum.PlanKind, nextDue time.Time) decimal.Decimal {
	from, to := CurrentCycleWindow(nextDue, kind)
	credit := decimal.Zero
	for _, r := range receipts {
		if r.Status != enum.ReceiptStatusApproved || r.PlanKind != kind {
			continue
		}
		paidAt := r.PaidAt()
		if paidAt.Before(from) || !paidAt.Before(to) {
			continue
		}
		credit = credit.Add(maxZero(decimal.NewFromFloat(r.Amount)))
	}
	return credit
}

// recentHistory merges plan payments with approved receipts into one
// descending timeline capped at the most recent entries.
func recentHistory(payments []*entity.PlanPayment, receipts []*entity.Receipt) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(payments)+len(receipts))
	for _, p := range payments {
		entries = append(entries, HistoryEntry{
			Amount: decimal.NewFromFloat(p.Amount),
			Status: p.Status,
			Method: p.Method,
			PaidAt: p.PaidAt,
		})
	}
	for _, r := range receipts {
		if r.Status != enum.ReceiptStatusApproved {
			continue
		}
		entries = append(entries, HistoryEntry{
			Amount: decimal.NewFromFloat(r.Amount),
			Status: enum.PaymentStatusApproved,
			Method: enum.PaymentMethodReceipt,
			PaidAt: r.PaidAt(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PaidAt.After(entries[j].PaidAt)
	})
	if len(entries) > recentPaymentLimit {
		entries = entries[:recentPaymentLimit]
	}
	return entries
}

// Money rounds an internal amount to two decimal places for responses.
func Money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
