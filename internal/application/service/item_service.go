package service

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/catalog"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

var (
	validWeeklyCycles  = map[int]bool{4: true, 8: true, 12: true}
	validMonthlyCycles = map[int]bool{1: true, 2: true, 3: true}
)

// ItemService handles financed item operations
type ItemService struct {
	itemRepo repository.FinancedItemRepository
	userRepo repository.UserRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.FinancedItemRepository, userRepo repository.UserRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

// CreateItemInput represents the input for financing a phone
type CreateItemInput struct {
	UserID        uuid.UUID
	PhoneModel    string
	Plan          string
	WeeklyCycles  int
	MonthlyCycles int
	PhonePrice    float64
}

// CreateItemOutput carries the created item and its derived pricing
type CreateItemOutput struct {
	Item         *entity.FinancedItem
	DownPayment  float64
	LoanedAmount float64
}

// CreateItem finances a phone for a customer. Pricing is derived from
// the catalog: the down payment rate depends on the model, and the
// loaned amount is the remainder of the phone price.
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	var fieldErrors []apperror.FieldError

	if !catalog.IsSupported(input.PhoneModel) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "phone_model",
			Message: "unsupported phone model",
		})
	}

	kind, ok := enum.ParsePlanKind(input.Plan)
	if !ok {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "plan",
			Message: "plan must be Weekly or Monthly",
		})
	}

	if catalog.IsWeeklyOnly(input.PhoneModel) && kind == enum.PlanKindMonthly {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "plan",
			Message: "this model is only available on weekly plans",
		})
	}

	switch kind {
	case enum.PlanKindWeekly:
		if !validWeeklyCycles[input.WeeklyCycles] {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "weekly_plan",
				Message: "weekly plan must be 4, 8 or 12 weeks",
			})
		}
	case enum.PlanKindMonthly:
		if !validMonthlyCycles[input.MonthlyCycles] {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "monthly_plan",
				Message: "monthly plan must be 1, 2 or 3 months",
			})
		}
	}

	if input.PhonePrice <= 0 || math.IsNaN(input.PhonePrice) || math.IsInf(input.PhonePrice, 0) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "phone_price",
			Message: "phone price must be a positive amount",
		})
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	count, err := s.itemRepo.CountOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.ErrItemLimitReached
	}

	price := decimal.NewFromFloat(input.PhonePrice)
	down := price.Mul(catalog.DownPaymentRate(input.PhoneModel))
	loaned := price.Sub(down)

	downF, _ := down.Round(2).Float64()
	loanedF, _ := loaned.Round(2).Float64()
	priceF := input.PhonePrice

	item := &entity.FinancedItem{
		UserID:        input.UserID,
		UserEmail:     user.Email,
		PhoneModel:    input.PhoneModel,
		PhoneImageURL: catalog.ImageURL(input.PhoneModel),
		PlanKind:      kind,
		WeeklyCycles:  input.WeeklyCycles,
		MonthlyCycles: input.MonthlyCycles,
		DownPayment:   downF,
		LoanedAmount:  &loanedF,
		PhonePrice:    &priceF,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return &CreateItemOutput{
		Item:         item,
		DownPayment:  downF,
		LoanedAmount: loanedF,
	}, nil
}

// GetItem retrieves a financed item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.FinancedItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems retrieves financed items with pagination and search
func (s *ItemService) ListItems(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.FinancedItem, *pagination.Pagination, error) {
	items, total, err := s.itemRepo.List(ctx, params, search)
	if err != nil {
		return nil, nil, err
	}
	return items, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// ListUserItems retrieves every item belonging to one customer
func (s *ItemService) ListUserItems(ctx context.Context, userID uuid.UUID) ([]*entity.FinancedItem, error) {
	return s.itemRepo.ListByUser(ctx, userID)
}

// DeleteItem removes a financed item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

// CatalogModel describes one financeable phone for the storefront
type CatalogModel struct {
	Name            string  `json:"name"`
	ImageURL        string  `json:"image_url"`
	WeeklyOnly      bool    `json:"weekly_only"`
	DownPaymentRate float64 `json:"down_payment_rate"`
}

// Catalog returns the supported models with their financing rules
func (s *ItemService) Catalog() []CatalogModel {
	names := catalog.Models()
	sort.Strings(names)
	models := make([]CatalogModel, 0, len(names))
	for _, name := range names {
		rate, _ := catalog.DownPaymentRate(name).Float64()
		models = append(models, CatalogModel{
			Name:            name,
			ImageURL:        catalog.ImageURL(name),
			WeeklyOnly:      catalog.IsWeeklyOnly(name),
			DownPaymentRate: rate,
		})
	}
	return models
}
