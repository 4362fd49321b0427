package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	domainRepo "github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByJTI(ctx context.Context, jti string) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).First(&session, "jti = ?", jti).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) Deactivate(ctx context.Context, jti string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("jti = ? AND active", jti).
		Updates(map[string]interface{}{
			"active":    false,
			"logout_at": now,
		}).Error
}

func (r *sessionRepository) Touch(ctx context.Context, jti string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("jti = ?", jti).
		Update("last_seen_at", time.Now()).Error
}

// LoginStats counts sessions per role. Expired sessions still marked
// active are excluded from the active column.
func (r *sessionRepository) LoginStats(ctx context.Context) ([]domainRepo.RoleLoginStat, error) {
	var stats []domainRepo.RoleLoginStat
	err := r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Select("role, COUNT(*) FILTER (WHERE active AND expires_at > NOW()) AS active, COUNT(*) AS total").
		Group("role").
		Order("role").
		Scan(&stats).Error
	return stats, err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.Session{}).Error
}
