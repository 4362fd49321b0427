package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	domainRepo "github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
)

type installmentPlanRepository struct {
	db *gorm.DB
}

// NewInstallmentPlanRepository creates a new installment plan repository
func NewInstallmentPlanRepository(db *gorm.DB) domainRepo.InstallmentPlanRepository {
	return &installmentPlanRepository{db: db}
}

func (r *installmentPlanRepository) Create(ctx context.Context, plan *entity.InstallmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *installmentPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error) {
	var plan entity.InstallmentPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

// GetActiveByUser returns the newest plan without an end date.
func (r *installmentPlanRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.InstallmentPlan, error) {
	var plan entity.InstallmentPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_date IS NULL", userID).
		Order("created_at DESC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *installmentPlanRepository) Update(ctx context.Context, plan *entity.InstallmentPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *installmentPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InstallmentPlan{}, "id = ?", id).Error
}

type planPaymentRepository struct {
	db *gorm.DB
}

// NewPlanPaymentRepository creates a new plan payment repository
func NewPlanPaymentRepository(db *gorm.DB) domainRepo.PlanPaymentRepository {
	return &planPaymentRepository{db: db}
}

func (r *planPaymentRepository) Create(ctx context.Context, payment *entity.PlanPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *planPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PlanPayment, error) {
	var payments []*entity.PlanPayment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *planPaymentRepository) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*entity.PlanPayment, error) {
	var payments []*entity.PlanPayment
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}
