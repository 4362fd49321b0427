package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
)

// InstallmentPlanRepository defines the interface for installment plan data operations
type InstallmentPlanRepository interface {
	Create(ctx context.Context, plan *entity.InstallmentPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error)
	// GetActiveByUser returns the customer's open plan, or nil when
	// none exists.
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.InstallmentPlan, error)
	Update(ctx context.Context, plan *entity.InstallmentPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanPaymentRepository defines the interface for plan payment data operations
type PlanPaymentRepository interface {
	Create(ctx context.Context, payment *entity.PlanPayment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PlanPayment, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*entity.PlanPayment, error)
}
