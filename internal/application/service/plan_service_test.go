package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

func TestCreatePlanOnePerCustomer(t *testing.T) {
	userID := uuid.New()
	svc := NewPlanService(newFakePlanRepo(), &fakePaymentRepo{}, newFakeItemRepo(), newFakeReceiptRepo())

	input := &CreatePlanInput{UserID: userID, TotalAmount: 1240}
	if _, err := svc.CreatePlan(context.Background(), input); err != nil {
		t.Fatalf("first CreatePlan: %v", err)
	}

	_, err := svc.CreatePlan(context.Background(), input)
	if !errors.Is(err, apperror.ErrPlanExists) {
		t.Errorf("expected ErrPlanExists, got %v", err)
	}
}

func TestCreatePlanRejectsBadAmount(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo(), &fakePaymentRepo{}, newFakeItemRepo(), newFakeReceiptRepo())

	for _, amount := range []float64{0, -100} {
		if _, err := svc.CreatePlan(context.Background(), &CreatePlanInput{UserID: uuid.New(), TotalAmount: amount}); err == nil {
			t.Errorf("amount %v: expected error", amount)
		}
	}
}

func TestCreatePaymentRequiresActivePlan(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo(), &fakePaymentRepo{}, newFakeItemRepo(), newFakeReceiptRepo())

	_, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		Amount: 105,
		Method: "bank",
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestCreatePaymentOnActivePlan(t *testing.T) {
	userID := uuid.New()
	plan := &entity.InstallmentPlan{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: 1240,
		StartDate:   time.Now().Add(-7 * 24 * time.Hour),
	}
	payments := &fakePaymentRepo{}
	// An open item keeps the derived balance positive.
	svc := NewPlanService(newFakePlanRepo(plan), payments, newFakeItemRepo(weeklyItem(userID)), newFakeReceiptRepo())

	payment, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: userID,
		Amount: 105,
		Method: "bank",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if payment.PlanID != plan.ID {
		t.Errorf("plan ID = %v, want %v", payment.PlanID, plan.ID)
	}
	if payment.Status != enum.PaymentStatusPaid {
		t.Errorf("status = %v, want paid", payment.Status)
	}
	if payment.Method != enum.PaymentMethodBank {
		t.Errorf("method = %v, want bank", payment.Method)
	}
	if payment.PaidAt.IsZero() {
		t.Error("paid at must default to now")
	}
}

func TestCreatePaymentRefusedWhenSettled(t *testing.T) {
	userID := uuid.New()
	plan := &entity.InstallmentPlan{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: 1240,
		StartDate:   time.Now().Add(-60 * 24 * time.Hour),
	}
	// No open items: the derived balance is zero, so the plan reads
	// completed even though the row is still open.
	svc := NewPlanService(newFakePlanRepo(plan), &fakePaymentRepo{}, newFakeItemRepo(), newFakeReceiptRepo())

	_, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: userID,
		Amount: 105,
		Method: "bank",
	})
	if !errors.Is(err, apperror.ErrPlanCompleted) {
		t.Errorf("expected ErrPlanCompleted, got %v", err)
	}
}

func TestCreatePaymentUnknownMethod(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo(), &fakePaymentRepo{}, newFakeItemRepo(), newFakeReceiptRepo())

	_, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		Amount: 105,
		Method: "barter",
	})
	if err == nil {
		t.Error("expected error for unknown method")
	}
}
