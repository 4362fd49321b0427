package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// AuditLogRepository defines the interface for audit log data operations
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *pagination.PaginationParams, action string) ([]entity.AuditLog, int64, error)
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
}
