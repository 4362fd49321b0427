package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// Audit actions recorded by privileged override flows.
const (
	auditUserDelete           = "USER_DELETE"
	auditUserNextDueUpdate    = "USER_NEXT_DUE_DATE_UPDATE"
	auditItemCreatedUpdate    = "ITEM_CREATED_DATE_UPDATE"
	auditReceiptUploadsUpdate = "RECEIPT_UPLOAD_DATE_UPDATE"
)

// AdminService handles privileged user management and billing overrides
type AdminService struct {
	userRepo    repository.UserRepository
	itemRepo    repository.FinancedItemRepository
	receiptRepo repository.ReceiptRepository
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditLogRepository
	dashboard   *DashboardService
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repository.UserRepository,
	itemRepo repository.FinancedItemRepository,
	receiptRepo repository.ReceiptRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditLogRepository,
	dashboard *DashboardService,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		receiptRepo: receiptRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		dashboard:   dashboard,
	}
}

// Actor identifies the staff member performing a privileged action
type Actor struct {
	ID   uuid.UUID
	Role string
}

// ListUsers retrieves users with pagination and search
func (s *AdminService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, *pagination.Pagination, error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, nil, err
	}
	return users, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// ListUsersWithItems retrieves customers that hold at least one financed item
func (s *AdminService) ListUsersWithItems(ctx context.Context, params *pagination.PaginationParams) ([]entity.User, *pagination.Pagination, error) {
	users, total, err := s.userRepo.ListWithItems(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return users, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// DeleteUser removes a user and every dependent record, then logs the
// deletion with the actor who ordered it.
func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID, actor Actor, reason string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	return s.writeAudit(ctx, actor, auditUserDelete, "user", userID, reason, map[string]interface{}{
		"deletedUserEmail":    user.Email,
		"deletedUserFullName": user.FullName,
	})
}

// LoginStats aggregates session counts per role
func (s *AdminService) LoginStats(ctx context.Context) ([]repository.RoleLoginStat, error) {
	return s.sessionRepo.LoginStats(ctx)
}

// ListAuditLogs retrieves audit entries, optionally filtered by action
func (s *AdminService) ListAuditLogs(ctx context.Context, params *pagination.PaginationParams, action string) ([]entity.AuditLog, *pagination.Pagination, error) {
	logs, total, err := s.auditRepo.List(ctx, params, action)
	if err != nil {
		return nil, nil, err
	}
	return logs, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// NextDueDatePreview shows the schedule-derived due date next to a
// proposed replacement before anything is written.
type NextDueDatePreview struct {
	CurrentNextDueDate  *time.Time `json:"current_next_due_date"`
	ProposedNextDueDate time.Time  `json:"proposed_next_due_date"`
}

// PreviewNextDueDate computes what a due-date override would change
func (s *AdminService) PreviewNextDueDate(ctx context.Context, userID uuid.UUID, proposed time.Time) (*NextDueDatePreview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	current, err := s.dashboard.ComputedNextDueDate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NextDueDatePreview{
		CurrentNextDueDate:  current,
		ProposedNextDueDate: proposed,
	}, nil
}

// UpdateNextDueDateInput represents the input for shifting a customer's schedule
type UpdateNextDueDateInput struct {
	UserID      uuid.UUID
	NextDueDate time.Time
	Actor       Actor
	Reason      string
}

// UpdateNextDueDate moves a customer's next due date by shifting every
// financed item's billing anchor by the same offset, so all later
// cycles move together. Requires a currently computable due date.
func (s *AdminService) UpdateNextDueDate(ctx context.Context, input *UpdateNextDueDateInput) (*NextDueDatePreview, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	items, err := s.itemRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFoundError("Financed item")
	}

	current, err := s.dashboard.ComputedNextDueDate(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewConflictError("Customer has no upcoming due date to move")
	}

	shift := input.NextDueDate.Sub(*current)

	itemIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	if err := s.itemRepo.ShiftBillingAnchors(ctx, input.UserID, itemIDs, shift); err != nil {
		return nil, err
	}

	updated, err := s.dashboard.ComputedNextDueDate(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	err = s.writeAudit(ctx, input.Actor, auditUserNextDueUpdate, "user", input.UserID, input.Reason, map[string]interface{}{
		"targetUserEmail":       user.Email,
		"targetUserFullName":    user.FullName,
		"previousNextDueDate":   current,
		"updatedNextDueDate":    updated,
		"shiftedByMs":           shift.Milliseconds(),
		"affectedItemsCount":    len(itemIDs),
		"scheduleAnchorUpdated": true,
	})
	if err != nil {
		return nil, err
	}

	return &NextDueDatePreview{
		CurrentNextDueDate:  updated,
		ProposedNextDueDate: input.NextDueDate,
	}, nil
}

// OverrideItemCreatedAtInput represents the input for backdating an item
type OverrideItemCreatedAtInput struct {
	ItemID    uuid.UUID
	CreatedAt time.Time
	Actor     Actor
	Reason    string
}

// OverrideItemCreatedAt rewrites when an item was financed. The billing
// anchor moves with it so the whole schedule is recomputed from the new
// date.
func (s *AdminService) OverrideItemCreatedAt(ctx context.Context, input *OverrideItemCreatedAtInput) (*entity.FinancedItem, error) {
	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	previous := item.CreatedAt
	if err := s.itemRepo.OverrideCreatedAt(ctx, input.ItemID, input.CreatedAt); err != nil {
		return nil, err
	}

	err = s.writeAudit(ctx, input.Actor, auditItemCreatedUpdate, "item", input.ItemID, input.Reason, map[string]interface{}{
		"itemOwner":         item.UserID,
		"phoneModel":        item.PhoneModel,
		"previousCreatedAt": previous,
		"updatedCreatedAt":  input.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return s.itemRepo.GetByID(ctx, input.ItemID)
}

// OverrideReceiptUploadedAtInput represents the input for backdating a receipt
type OverrideReceiptUploadedAtInput struct {
	ReceiptID  uuid.UUID
	UploadedAt time.Time
	Actor      Actor
	Reason     string
}

// OverrideReceiptUploadedAt rewrites when a receipt was uploaded, which
// changes the billing cycle an unapproved receipt will land in.
func (s *AdminService) OverrideReceiptUploadedAt(ctx context.Context, input *OverrideReceiptUploadedAtInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	previous := receipt.CreatedAt
	if err := s.receiptRepo.OverrideCreatedAt(ctx, input.ReceiptID, input.UploadedAt); err != nil {
		return nil, err
	}

	err = s.writeAudit(ctx, input.Actor, auditReceiptUploadsUpdate, "receipt", input.ReceiptID, input.Reason, map[string]interface{}{
		"receiptOwner":       receipt.UserID,
		"receiptAmount":      receipt.Amount,
		"previousUploadedAt": previous,
		"updatedUploadedAt":  input.UploadedAt,
	})
	if err != nil {
		return nil, err
	}

	return s.receiptRepo.GetByID(ctx, input.ReceiptID)
}

func (s *AdminService) writeAudit(ctx context.Context, actor Actor, action, targetType string, targetID uuid.UUID, reason string, metadata map[string]interface{}) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	if reason == "" {
		reason = "No reason provided"
	}
	id := targetID
	return s.auditRepo.Create(ctx, &entity.AuditLog{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		TargetType: targetType,
		TargetID:   &id,
		Reason:     reason,
		Metadata:   payload,
	})
}
