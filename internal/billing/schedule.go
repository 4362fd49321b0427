package billing

import (
	"time"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// Interval returns the fixed length of one billing cycle.
func Interval(kind enum.PlanKind) time.Duration {
	return time.Duration(kind.IntervalDays()) * 24 * time.Hour
}

// ElapsedCycles counts how many billing cycles have matured since the
// anchor date. The first installment falls due one full interval after
// the anchor; before that the count is zero. The count never exceeds
// maxCycles and a non-positive maxCycles yields zero.
func ElapsedCycles(anchor time.Time, kind enum.PlanKind, maxCycles int, now time.Time) int {
	if maxCycles <= 0 || !kind.IsValid() {
		return 0
	}
	interval := Interval(kind)
	firstDue := anchor.Add(interval)
	if now.Before(firstDue) {
		return 0
	}
	elapsed := int(now.Sub(firstDue)/interval) + 1
	if elapsed > maxCycles {
		return maxCycles
	}
	return elapsed
}

// NextDueDate returns the due date of the next unmatured cycle, or nil
// once every cycle has matured.
func NextDueDate(anchor time.Time, kind enum.PlanKind, maxCycles int, now time.Time) *time.Time {
	if maxCycles <= 0 || !kind.IsValid() {
		return nil
	}
	elapsed := ElapsedCycles(anchor, kind, maxCycles, now)
	if elapsed >= maxCycles {
		return nil
	}
	due := anchor.Add(Interval(kind) * time.Duration(1+elapsed))
	return &due
}

// CurrentCycleWindow returns the half-open window [nextDue-interval, nextDue)
// covering the cycle currently falling due. Receipts approved inside this
// window settle the upcoming installment.
func CurrentCycleWindow(nextDue time.Time, kind enum.PlanKind) (time.Time, time.Time) {
	return nextDue.Add(-Interval(kind)), nextDue
}
