package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

func testCustomer() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		FullName: "Ada Obi",
		Email:    "ada@example.com",
	}
}

func TestCreateItemDerivesPricing(t *testing.T) {
	customer := testCustomer()
	svc := NewItemService(newFakeItemRepo(), newFakeUserRepo(customer))

	output, err := svc.CreateItem(context.Background(), &CreateItemInput{
		UserID:       customer.ID,
		PhoneModel:   "iPhone 14",
		Plan:         "Weekly",
		WeeklyCycles: 8,
		PhonePrice:   1000,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if output.DownPayment != 400 {
		t.Errorf("down payment = %v, want 400", output.DownPayment)
	}
	if output.LoanedAmount != 600 {
		t.Errorf("loaned amount = %v, want 600", output.LoanedAmount)
	}
	if output.Item.UserEmail != customer.Email {
		t.Errorf("user email = %q, want %q", output.Item.UserEmail, customer.Email)
	}
	if output.Item.PhoneImageURL == "" {
		t.Error("expected catalog image URL to be set")
	}
	if output.Item.PlanKind != enum.PlanKindWeekly {
		t.Errorf("plan kind = %v, want Weekly", output.Item.PlanKind)
	}
}

func TestCreateItemElevatedDownPayment(t *testing.T) {
	customer := testCustomer()
	svc := NewItemService(newFakeItemRepo(), newFakeUserRepo(customer))

	output, err := svc.CreateItem(context.Background(), &CreateItemInput{
		UserID:       customer.ID,
		PhoneModel:   "iPhone XR",
		Plan:         "Weekly",
		WeeklyCycles: 4,
		PhonePrice:   1000,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if output.DownPayment != 600 {
		t.Errorf("down payment = %v, want 600", output.DownPayment)
	}
	if output.LoanedAmount != 400 {
		t.Errorf("loaned amount = %v, want 400", output.LoanedAmount)
	}
}

func TestCreateItemValidation(t *testing.T) {
	customer := testCustomer()

	tests := []struct {
		name  string
		input CreateItemInput
	}{
		{
			name: "unsupported model",
			input: CreateItemInput{
				PhoneModel: "Galaxy S24", Plan: "Weekly", WeeklyCycles: 4, PhonePrice: 1000,
			},
		},
		{
			name: "weekly only model on monthly plan",
			input: CreateItemInput{
				PhoneModel: "iPhone 11", Plan: "Monthly", MonthlyCycles: 2, PhonePrice: 1000,
			},
		},
		{
			name: "invalid weekly cycles",
			input: CreateItemInput{
				PhoneModel: "iPhone 14", Plan: "Weekly", WeeklyCycles: 6, PhonePrice: 1000,
			},
		},
		{
			name: "invalid monthly cycles",
			input: CreateItemInput{
				PhoneModel: "iPhone 14", Plan: "Monthly", MonthlyCycles: 4, PhonePrice: 1000,
			},
		},
		{
			name: "unknown plan",
			input: CreateItemInput{
				PhoneModel: "iPhone 14", Plan: "Fortnightly", WeeklyCycles: 4, PhonePrice: 1000,
			},
		},
		{
			name: "zero price",
			input: CreateItemInput{
				PhoneModel: "iPhone 14", Plan: "Weekly", WeeklyCycles: 4, PhonePrice: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewItemService(newFakeItemRepo(), newFakeUserRepo(customer))
			input := tt.input
			input.UserID = customer.ID

			_, err := svc.CreateItem(context.Background(), &input)

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != 422 {
				t.Errorf("code = %d, want 422", appErr.Code)
			}
		})
	}
}

func TestCreateItemOnePerCustomer(t *testing.T) {
	customer := testCustomer()
	svc := NewItemService(newFakeItemRepo(), newFakeUserRepo(customer))

	input := &CreateItemInput{
		UserID:       customer.ID,
		PhoneModel:   "iPhone 14",
		Plan:         "Weekly",
		WeeklyCycles: 8,
		PhonePrice:   1000,
	}
	if _, err := svc.CreateItem(context.Background(), input); err != nil {
		t.Fatalf("first CreateItem: %v", err)
	}

	_, err := svc.CreateItem(context.Background(), input)
	if !errors.Is(err, apperror.ErrItemLimitReached) {
		t.Errorf("expected ErrItemLimitReached, got %v", err)
	}
}

func TestCreateItemUnknownUser(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeUserRepo())

	_, err := svc.CreateItem(context.Background(), &CreateItemInput{
		UserID:       uuid.New(),
		PhoneModel:   "iPhone 14",
		Plan:         "Weekly",
		WeeklyCycles: 8,
		PhonePrice:   1000,
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}
