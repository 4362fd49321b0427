package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// DueAdjustment is the upcoming payment after crediting receipts
// approved during the current cycle.
type DueAdjustment struct {
	NextPaymentAmount decimal.Decimal
	NextPaymentDue    *time.Time
}

// ApplyReceiptCredit nets the current-cycle receipt credit against the
// upcoming installment. A partial credit reduces the installment in
// place. A credit covering one or more full installments advances the
// due date by that many intervals and rolls the remainder into the
// following installment.
func ApplyReceiptCredit(dueAmount decimal.Decimal, dueDate *time.Time, credit decimal.Decimal, kind enum.PlanKind) DueAdjustment {
	dueAmount = maxZero(dueAmount)
	credit = maxZero(credit)

	if !dueAmount.IsPositive() || !credit.IsPositive() {
		return DueAdjustment{NextPaymentAmount: dueAmount, NextPaymentDue: dueDate}
	}

	if credit.LessThan(dueAmount) {
		return DueAdjustment{
			NextPaymentAmount: dueAmount.Sub(credit),
			NextPaymentDue:    dueDate,
		}
	}

	// Current cycle fully settled; roll any overpayment forward.
	overpayment := credit.Sub(dueAmount)
	coveredCycles := overpayment.Div(dueAmount).Floor().IntPart()
	remainingCredit := overpayment.Mod(dueAmount)

	var shifted *time.Time
	if dueDate != nil {
		d := dueDate.Add(Interval(kind) * time.Duration(1+coveredCycles))
		shifted = &d
	}

	return DueAdjustment{
		NextPaymentAmount: maxZero(dueAmount.Sub(remainingCredit)),
		NextPaymentDue:    shifted,
	}
}
