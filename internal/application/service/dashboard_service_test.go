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

func TestGetDashboardUnknownUser(t *testing.T) {
	svc := NewDashboardService(newFakeUserRepo(), newFakeItemRepo(), newFakeReceiptRepo(), &fakePaymentRepo{})

	_, err := svc.GetDashboard(context.Background(), uuid.New())

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestGetDashboardSnapshot(t *testing.T) {
	customer := testCustomer()
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	item := weeklyItem(customer.ID)
	item.BillingAnchorDate = &anchor

	svc := NewDashboardService(
		newFakeUserRepo(customer),
		newFakeItemRepo(item),
		newFakeReceiptRepo(),
		&fakePaymentRepo{},
	)
	// Three cycles elapsed: installment 105, due to date 315.
	svc.now = func() time.Time { return anchor.Add(22 * 24 * time.Hour) }

	snapshot, err := svc.GetDashboard(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if snapshot.TotalAmount != 1000 {
		t.Errorf("total amount = %v, want 1000", snapshot.TotalAmount)
	}
	if snapshot.TotalPaid != 400 {
		t.Errorf("total paid = %v, want 400 (down payment only)", snapshot.TotalPaid)
	}
	// Total supposed 400 + 600*1.4 = 1240.
	if snapshot.RemainingBalance != 840 {
		t.Errorf("remaining = %v, want 840", snapshot.RemainingBalance)
	}
	if snapshot.OwedAmount != 315 {
		t.Errorf("owed = %v, want 315", snapshot.OwedAmount)
	}
	if snapshot.NextPaymentAmount != 105 {
		t.Errorf("next payment = %v, want 105", snapshot.NextPaymentAmount)
	}
	if snapshot.PlanStatus != "active" {
		t.Errorf("plan status = %q, want active", snapshot.PlanStatus)
	}
	wantDue := anchor.Add(4 * 7 * 24 * time.Hour)
	if snapshot.NextPaymentDue == nil || !snapshot.NextPaymentDue.Equal(wantDue) {
		t.Errorf("next due = %v, want %v", snapshot.NextPaymentDue, wantDue)
	}
	// 400 / 1240 * 100 rounded to two places.
	if snapshot.Progress != 32.26 {
		t.Errorf("progress = %v, want 32.26", snapshot.Progress)
	}
}

func TestGetDashboardRecentPayments(t *testing.T) {
	customer := testCustomer()
	item := weeklyItem(customer.ID)

	approvedAt := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	receipt := &entity.Receipt{
		ID:         uuid.New(),
		UserID:     customer.ID,
		PlanKind:   enum.PlanKindWeekly,
		Amount:     105,
		Status:     enum.ReceiptStatusApproved,
		ApprovedAt: &approvedAt,
	}

	payments := &fakePaymentRepo{}
	payments.payments = append(payments.payments, &entity.PlanPayment{
		ID:     uuid.New(),
		UserID: customer.ID,
		Amount: 400,
		Status: enum.PaymentStatusPaid,
		Method: enum.PaymentMethodBank,
		PaidAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	})

	svc := NewDashboardService(newFakeUserRepo(customer), newFakeItemRepo(item), newFakeReceiptRepo(receipt), payments)

	snapshot, err := svc.GetDashboard(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if len(snapshot.RecentPayments) != 2 {
		t.Fatalf("recent payments = %d entries, want 2", len(snapshot.RecentPayments))
	}
	// Receipt is newer, so it leads the timeline.
	if snapshot.RecentPayments[0].PaymentMethod != enum.PaymentMethodReceipt.String() {
		t.Errorf("first entry method = %q, want receipt", snapshot.RecentPayments[0].PaymentMethod)
	}
	if snapshot.RecentPayments[1].Amount != 400 {
		t.Errorf("second entry amount = %v, want 400", snapshot.RecentPayments[1].Amount)
	}
}
