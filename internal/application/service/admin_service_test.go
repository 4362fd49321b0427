package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

type adminFixture struct {
	svc       *AdminService
	users     *fakeUserRepo
	items     *fakeItemRepo
	receipts  *fakeReceiptRepo
	audit     *fakeAuditRepo
	dashboard *DashboardService
}

func newAdminFixture(users *fakeUserRepo, items *fakeItemRepo, receipts *fakeReceiptRepo) *adminFixture {
	audit := &fakeAuditRepo{}
	dashboard := NewDashboardService(users, items, receipts, &fakePaymentRepo{})
	return &adminFixture{
		svc:       NewAdminService(users, items, receipts, newFakeSessionRepo(), audit, dashboard),
		users:     users,
		items:     items,
		receipts:  receipts,
		audit:     audit,
		dashboard: dashboard,
	}
}

func TestUpdateNextDueDateShiftsAnchors(t *testing.T) {
	customer := testCustomer()
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	item := weeklyItem(customer.ID)
	item.BillingAnchorDate = &anchor

	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(item), newFakeReceiptRepo())
	now := anchor.Add(2 * 24 * time.Hour)
	f.dashboard.now = func() time.Time { return now }

	// Next due is anchor+7d; push it three days later.
	currentDue := anchor.Add(7 * 24 * time.Hour)
	target := currentDue.Add(3 * 24 * time.Hour)

	result, err := f.svc.UpdateNextDueDate(context.Background(), &UpdateNextDueDateInput{
		UserID:      customer.ID,
		NextDueDate: target,
		Actor:       Actor{ID: uuid.New(), Role: "super-admin"},
		Reason:      "customer traveled",
	})
	if err != nil {
		t.Fatalf("UpdateNextDueDate: %v", err)
	}

	if f.items.shifted != 72*time.Hour {
		t.Errorf("anchor shift = %v, want 72h", f.items.shifted)
	}
	if result.CurrentNextDueDate == nil || !result.CurrentNextDueDate.Equal(target) {
		t.Errorf("recomputed due = %v, want %v", result.CurrentNextDueDate, target)
	}

	if len(f.audit.logs) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(f.audit.logs))
	}
	entry := f.audit.logs[0]
	if entry.Action != "USER_NEXT_DUE_DATE_UPDATE" {
		t.Errorf("action = %q", entry.Action)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(entry.Metadata, &metadata); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if metadata["shiftedByMs"] != float64(72*time.Hour/time.Millisecond) {
		t.Errorf("shiftedByMs = %v", metadata["shiftedByMs"])
	}
	if metadata["affectedItemsCount"] != float64(1) {
		t.Errorf("affectedItemsCount = %v", metadata["affectedItemsCount"])
	}
	if metadata["targetUserEmail"] != customer.Email {
		t.Errorf("targetUserEmail = %v", metadata["targetUserEmail"])
	}
}

func TestUpdateNextDueDateRequiresItems(t *testing.T) {
	customer := testCustomer()
	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(), newFakeReceiptRepo())

	_, err := f.svc.UpdateNextDueDate(context.Background(), &UpdateNextDueDateInput{
		UserID:      customer.ID,
		NextDueDate: time.Now().Add(7 * 24 * time.Hour),
		Actor:       Actor{ID: uuid.New(), Role: "super-admin"},
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestUpdateNextDueDateRequiresComputableDue(t *testing.T) {
	customer := testCustomer()
	anchor := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := weeklyItem(customer.ID)
	item.BillingAnchorDate = &anchor

	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(item), newFakeReceiptRepo())
	// Far past the schedule: all eight cycles elapsed, nothing pending.
	f.dashboard.now = func() time.Time { return anchor.Add(365 * 24 * time.Hour) }

	_, err := f.svc.UpdateNextDueDate(context.Background(), &UpdateNextDueDateInput{
		UserID:      customer.ID,
		NextDueDate: anchor.Add(400 * 24 * time.Hour),
		Actor:       Actor{ID: uuid.New(), Role: "super-admin"},
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestPreviewNextDueDate(t *testing.T) {
	customer := testCustomer()
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	item := weeklyItem(customer.ID)
	item.BillingAnchorDate = &anchor

	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(item), newFakeReceiptRepo())
	f.dashboard.now = func() time.Time { return anchor.Add(24 * time.Hour) }

	proposed := anchor.Add(14 * 24 * time.Hour)
	preview, err := f.svc.PreviewNextDueDate(context.Background(), customer.ID, proposed)
	if err != nil {
		t.Fatalf("PreviewNextDueDate: %v", err)
	}

	wantCurrent := anchor.Add(7 * 24 * time.Hour)
	if preview.CurrentNextDueDate == nil || !preview.CurrentNextDueDate.Equal(wantCurrent) {
		t.Errorf("current = %v, want %v", preview.CurrentNextDueDate, wantCurrent)
	}
	if !preview.ProposedNextDueDate.Equal(proposed) {
		t.Errorf("proposed = %v, want %v", preview.ProposedNextDueDate, proposed)
	}
	if len(f.audit.logs) != 0 {
		t.Error("preview must not write audit entries")
	}
}

func TestOverrideItemCreatedAt(t *testing.T) {
	customer := testCustomer()
	item := weeklyItem(customer.ID)

	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(item), newFakeReceiptRepo())

	backdated := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := f.svc.OverrideItemCreatedAt(context.Background(), &OverrideItemCreatedAtInput{
		ItemID:    item.ID,
		CreatedAt: backdated,
		Actor:     Actor{ID: uuid.New(), Role: "super-admin"},
		Reason:    "migrated from paper records",
	})
	if err != nil {
		t.Fatalf("OverrideItemCreatedAt: %v", err)
	}

	if !updated.CreatedAt.Equal(backdated) {
		t.Errorf("created at = %v, want %v", updated.CreatedAt, backdated)
	}
	if updated.BillingAnchorDate == nil || !updated.BillingAnchorDate.Equal(backdated) {
		t.Errorf("billing anchor = %v, want %v", updated.BillingAnchorDate, backdated)
	}
	if len(f.audit.logs) != 1 || f.audit.logs[0].Action != "ITEM_CREATED_DATE_UPDATE" {
		t.Fatalf("expected ITEM_CREATED_DATE_UPDATE audit entry, got %+v", f.audit.logs)
	}
}

func TestOverrideReceiptUploadedAt(t *testing.T) {
	customer := testCustomer()
	receipt := &entity.Receipt{
		ID:        uuid.New(),
		UserID:    customer.ID,
		Amount:    105,
		CreatedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}

	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(), newFakeReceiptRepo(receipt))

	backdated := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	updated, err := f.svc.OverrideReceiptUploadedAt(context.Background(), &OverrideReceiptUploadedAtInput{
		ReceiptID:  receipt.ID,
		UploadedAt: backdated,
		Actor:      Actor{ID: uuid.New(), Role: "super-admin"},
	})
	if err != nil {
		t.Fatalf("OverrideReceiptUploadedAt: %v", err)
	}

	if !updated.CreatedAt.Equal(backdated) {
		t.Errorf("created at = %v, want %v", updated.CreatedAt, backdated)
	}
	if len(f.audit.logs) != 1 || f.audit.logs[0].Action != "RECEIPT_UPLOAD_DATE_UPDATE" {
		t.Fatalf("expected RECEIPT_UPLOAD_DATE_UPDATE audit entry, got %+v", f.audit.logs)
	}
}

func TestDeleteUserAudited(t *testing.T) {
	customer := testCustomer()
	f := newAdminFixture(newFakeUserRepo(customer), newFakeItemRepo(), newFakeReceiptRepo())

	if err := f.svc.DeleteUser(context.Background(), customer.ID, Actor{ID: uuid.New(), Role: "super-admin"}, "account closure request"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if got, _ := f.users.GetByID(context.Background(), customer.ID); got != nil {
		t.Error("user still present after delete")
	}
	if len(f.audit.logs) != 1 || f.audit.logs[0].Action != "USER_DELETE" {
		t.Fatalf("expected USER_DELETE audit entry, got %+v", f.audit.logs)
	}
}

func TestDeleteUserUnknown(t *testing.T) {
	f := newAdminFixture(newFakeUserRepo(), newFakeItemRepo(), newFakeReceiptRepo())

	err := f.svc.DeleteUser(context.Background(), uuid.New(), Actor{ID: uuid.New(), Role: "super-admin"}, "")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}
