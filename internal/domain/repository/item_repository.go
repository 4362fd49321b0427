package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// FinancedItemRepository defines the interface for financed item data operations
type FinancedItemRepository interface {
	Create(ctx context.Context, item *entity.FinancedItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FinancedItem, error)
	// ListByUser returns every financed item belonging to one customer.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.FinancedItem, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.FinancedItem, int64, error)
	Update(ctx context.Context, item *entity.FinancedItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountOpenByUser counts items a customer still holds; used to
	// enforce the one-item-per-customer rule.
	CountOpenByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// ShiftBillingAnchors moves the billing anchor of every listed item
	// by the same offset inside one transaction and clears any manual
	// due-date override on the owner.
	ShiftBillingAnchors(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, shift time.Duration) error
	// OverrideCreatedAt rewrites an item's creation and anchor dates.
	OverrideCreatedAt(ctx context.Context, id uuid.UUID, createdAt time.Time) error
}
