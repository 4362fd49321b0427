package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session tracks an issued access token for login statistics.
// One row per login; logout flips Active off.
type Session struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_sessions_user_active" json:"user_id"`
	Role       string     `gorm:"size:50;not null;index:idx_sessions_active_role,priority:2" json:"role"`
	JTI        string     `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	Active     bool       `gorm:"default:true;index:idx_sessions_user_active;index:idx_sessions_active_role,priority:1" json:"active"`
	LoginAt    time.Time  `gorm:"not null" json:"login_at"`
	LogoutAt   *time.Time `json:"logout_at,omitempty"`
	LastSeenAt time.Time  `gorm:"not null" json:"last_seen_at"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}
