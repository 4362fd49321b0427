package repository

import (
	"context"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
)

// RoleLoginStat is one row of the active-session breakdown by role.
type RoleLoginStat struct {
	Role   string `json:"role"`
	Active int64  `json:"active"`
	Total  int64  `json:"total"`
}

// SessionRepository defines the interface for login session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByJTI(ctx context.Context, jti string) (*entity.Session, error)
	// Deactivate marks the session ended and stamps the logout time.
	Deactivate(ctx context.Context, jti string) error
	Touch(ctx context.Context, jti string) error
	// LoginStats aggregates session counts per role for the admin
	// overview.
	LoginStats(ctx context.Context) ([]RoleLoginStat, error)
	DeleteExpired(ctx context.Context) error
}
