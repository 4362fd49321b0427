package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/billing"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

// DashboardService derives a customer's billing snapshot from their
// financed items, receipts, and recorded payments.
type DashboardService struct {
	userRepo    repository.UserRepository
	itemRepo    repository.FinancedItemRepository
	receiptRepo repository.ReceiptRepository
	paymentRepo repository.PlanPaymentRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repository.UserRepository,
	itemRepo repository.FinancedItemRepository,
	receiptRepo repository.ReceiptRepository,
	paymentRepo repository.PlanPaymentRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// DashboardSnapshot is the response shape returned to the frontend.
// Amounts are rounded to two decimal places at this boundary only.
type DashboardSnapshot struct {
	TotalAmount       float64          `json:"total_amount"`
	TotalPaid         float64          `json:"total_paid"`
	RemainingBalance  float64          `json:"remaining_balance"`
	OwedAmount        float64          `json:"owed_amount"`
	Progress          float64          `json:"progress"`
	NextPaymentDue    *time.Time       `json:"next_payment_due"`
	NextPaymentAmount float64          `json:"next_payment_amount"`
	PlanStatus        string           `json:"plan_status"`
	RecentPayments    []PaymentHistory `json:"recent_payments"`
}

// PaymentHistory is one normalized entry in the recent payment list
type PaymentHistory struct {
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaidAt        time.Time `json:"paid_at"`
}

// GetDashboard computes the snapshot for one customer
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := billing.Aggregate(items, receipts, payments, s.now())

	out := &DashboardSnapshot{
		TotalAmount:       billing.Money(snapshot.TotalAmount),
		TotalPaid:         billing.Money(snapshot.TotalPaid),
		RemainingBalance:  billing.Money(snapshot.RemainingBalance),
		OwedAmount:        billing.Money(snapshot.OwedAmount),
		Progress:          billing.Money(snapshot.Progress),
		NextPaymentDue:    snapshot.NextPaymentDue,
		NextPaymentAmount: billing.Money(snapshot.NextPaymentAmount),
		PlanStatus:        snapshot.PlanStatus,
		RecentPayments:    make([]PaymentHistory, 0, len(snapshot.RecentPayments)),
	}

	for _, entry := range snapshot.RecentPayments {
		out.RecentPayments = append(out.RecentPayments, PaymentHistory{
			Amount:        billing.Money(entry.Amount),
			Status:        entry.Status.String(),
			PaymentMethod: entry.Method.String(),
			PaidAt:        entry.PaidAt,
		})
	}

	return out, nil
}

// ComputedNextDueDate returns the schedule-derived next due date for a
// customer, ignoring any manual override. Used by the super admin
// preview and shift flows.
func (s *DashboardService) ComputedNextDueDate(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.receiptRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	snapshot := billing.Aggregate(items, receipts, nil, s.now())
	return snapshot.NextPaymentDue, nil
}
