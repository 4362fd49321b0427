package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/billing"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

// PlanService handles installment plan and payment records
type PlanService struct {
	planRepo    repository.InstallmentPlanRepository
	paymentRepo repository.PlanPaymentRepository
	itemRepo    repository.FinancedItemRepository
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

// NewPlanService creates a new plan service
func NewPlanService(
	planRepo repository.InstallmentPlanRepository,
	paymentRepo repository.PlanPaymentRepository,
	itemRepo repository.FinancedItemRepository,
	receiptRepo repository.ReceiptRepository,
) *PlanService {
	return &PlanService{
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		itemRepo:    itemRepo,
		receiptRepo: receiptRepo,
		now:         time.Now,
	}
}

// CreatePlanInput represents the input for opening an installment plan
type CreatePlanInput struct {
	UserID      uuid.UUID
	TotalAmount float64
	StartDate   time.Time
}

// CreatePlan opens an installment plan for a customer. A customer can
// hold at most one open plan at a time.
func (s *PlanService) CreatePlan(ctx context.Context, input *CreatePlanInput) (*entity.InstallmentPlan, error) {
	if input.TotalAmount <= 0 || math.IsNaN(input.TotalAmount) || math.IsInf(input.TotalAmount, 0) {
		return nil, apperror.NewBadRequestError("total amount must be greater than zero")
	}

	existing, err := s.planRepo.GetActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrPlanExists
	}

	start := input.StartDate
	if start.IsZero() {
		start = s.now()
	}

	plan := &entity.InstallmentPlan{
		UserID:      input.UserID,
		TotalAmount: input.TotalAmount,
		StartDate:   start,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetActivePlan returns the customer's open plan, or a not-found error
func (s *PlanService) GetActivePlan(ctx context.Context, userID uuid.UUID) (*entity.InstallmentPlan, error) {
	plan, err := s.planRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Active plan")
	}
	return plan, nil
}

// CreatePaymentInput represents the input for recording a plan payment
type CreatePaymentInput struct {
	UserID uuid.UUID
	Amount float64
	Method string
	PaidAt time.Time
}

// CreatePayment records a discrete payment against the customer's open
// plan. Payments are refused once the derived balance reaches zero.
func (s *PlanService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.PlanPayment, error) {
	if input.Amount <= 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, apperror.NewBadRequestError("amount must be greater than zero")
	}

	method, ok := enum.ParsePaymentMethod(input.Method)
	if !ok {
		return nil, apperror.NewBadRequestError("unknown payment method")
	}

	plan, err := s.planRepo.GetActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Active plan")
	}

	active, err := s.planIsActive(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperror.ErrPlanCompleted
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	payment := &entity.PlanPayment{
		UserID: input.UserID,
		PlanID: plan.ID,
		Amount: input.Amount,
		Status: enum.PaymentStatusPaid,
		Method: method,
		PaidAt: paidAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns every payment recorded for a customer
func (s *PlanService) ListPayments(ctx context.Context, userID uuid.UUID) ([]*entity.PlanPayment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// planIsActive derives plan state from the billing snapshot so the
// guard always agrees with the dashboard.
func (s *PlanService) planIsActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	receipts, err := s.receiptRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return false, err
	}

	snapshot := billing.Aggregate(items, receipts, nil, s.now())
	return snapshot.PlanStatus == "active", nil
}
