package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// ListByUser returns a customer's receipts filtered by status.
	// A nil status returns every receipt.
	ListByUser(ctx context.Context, userID uuid.UUID, status *enum.ReceiptStatus) ([]*entity.Receipt, error)
	// ListPendingWithCursor pages through pending receipts across all
	// customers for the admin review queue.
	ListPendingWithCursor(ctx context.Context, params *pagination.CursorParams) ([]entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	// OverrideCreatedAt rewrites when a receipt was uploaded.
	OverrideCreatedAt(ctx context.Context, id uuid.UUID, createdAt time.Time) error
}
