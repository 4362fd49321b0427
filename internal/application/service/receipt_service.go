package service

import (
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/infrastructure/storage"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// ReceiptService handles receipt upload and review operations
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	itemRepo    repository.FinancedItemRepository
	auditRepo   repository.AuditLogRepository
	files       storage.FileStore
	now         func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	itemRepo repository.FinancedItemRepository,
	auditRepo repository.AuditLogRepository,
	files storage.FileStore,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		itemRepo:    itemRepo,
		auditRepo:   auditRepo,
		files:       files,
		now:         time.Now,
	}
}

// UploadReceiptInput represents the input for uploading a payment receipt
type UploadReceiptInput struct {
	UserID uuid.UUID
	Amount float64
	File   *multipart.FileHeader
}

func validReceiptContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

// UploadReceipt stores a proof-of-payment file and records a pending
// receipt. The receipt inherits the plan cadence of the customer's most
// recent financed item.
func (s *ReceiptService) UploadReceipt(ctx context.Context, input *UploadReceiptInput) (*entity.Receipt, error) {
	if input.File == nil {
		return nil, apperror.NewBadRequestError("Receipt file is required")
	}

	contentType := input.File.Header.Get("Content-Type")
	if !validReceiptContentType(contentType) {
		return nil, apperror.NewBadRequestError("Only image or PDF receipts are allowed")
	}

	if input.Amount <= 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, apperror.NewBadRequestError("amount must be greater than zero")
	}

	items, err := s.itemRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFoundError("Financed item")
	}

	// The most recently financed item decides the receipt's plan.
	planKind := items[len(items)-1].PlanKind

	fileType := "image"
	if contentType == "application/pdf" {
		fileType = "pdf"
	}

	key, url, err := s.files.Save(input.File, "receipts")
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		UserID:     input.UserID,
		PlanKind:   planKind,
		Amount:     input.Amount,
		FileURL:    url,
		FileType:   fileType,
		StorageKey: key,
		Status:     enum.ReceiptStatusPending,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		// Orphaned file cleanup; the receipt row is the source of truth.
		_ = s.files.Delete(key)
		return nil, err
	}

	return receipt, nil
}

// ListUserReceipts returns a customer's receipts, optionally filtered by status
func (s *ReceiptService) ListUserReceipts(ctx context.Context, userID uuid.UUID, status *enum.ReceiptStatus) ([]*entity.Receipt, error) {
	return s.receiptRepo.ListByUser(ctx, userID, status)
}

// ListPendingReceipts pages through the admin review queue, oldest first
func (s *ReceiptService) ListPendingReceipts(ctx context.Context, params *pagination.CursorParams) ([]entity.Receipt, *pagination.CursorPagination, error) {
	receipts, err := s.receiptRepo.ListPendingWithCursor(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	cursorPagination, page := pagination.NewCursorPagination(receipts, params.Limit,
		func(r entity.Receipt) string { return r.ID.String() },
		func(r entity.Receipt) time.Time { return r.CreatedAt },
	)
	return page, cursorPagination, nil
}

// ReviewReceiptInput represents the input for approving or rejecting a receipt
type ReviewReceiptInput struct {
	ReceiptID uuid.UUID
	ActorID   uuid.UUID
	ActorRole string
	Reason    string
}

// ApproveReceipt marks a pending receipt approved and stamps the
// approval time that buckets it into a billing cycle.
func (s *ReceiptService) ApproveReceipt(ctx context.Context, input *ReviewReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.pendingReceipt(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	approvedAt := s.now()
	receipt.Status = enum.ReceiptStatusApproved
	receipt.ApprovedAt = &approvedAt

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	if err := s.writeReviewAudit(ctx, "RECEIPT_APPROVE", receipt, input); err != nil {
		return nil, err
	}
	return receipt, nil
}

// RejectReceipt marks a pending receipt rejected so it never counts
// toward the customer's dues.
func (s *ReceiptService) RejectReceipt(ctx context.Context, input *ReviewReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.pendingReceipt(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	receipt.Status = enum.ReceiptStatusRejected

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	if err := s.writeReviewAudit(ctx, "RECEIPT_REJECT", receipt, input); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *ReceiptService) pendingReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.Status != enum.ReceiptStatusPending {
		return nil, apperror.NewConflictError("Receipt has already been reviewed")
	}
	return receipt, nil
}

func (s *ReceiptService) writeReviewAudit(ctx context.Context, action string, receipt *entity.Receipt, input *ReviewReceiptInput) error {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = "No reason provided"
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"receiptAmount": receipt.Amount,
		"receiptPlan":   receipt.PlanKind.String(),
		"receiptOwner":  receipt.UserID,
	})
	if err != nil {
		return err
	}

	targetID := receipt.ID
	return s.auditRepo.Create(ctx, &entity.AuditLog{
		ActorID:    input.ActorID,
		ActorRole:  input.ActorRole,
		Action:     action,
		TargetType: "receipt",
		TargetID:   &targetID,
		Reason:     reason,
		Metadata:   metadata,
	})
}
