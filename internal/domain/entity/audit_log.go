package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records privileged mutations: who changed what, on which
// record, and why.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"actor_id"`
	ActorRole  string     `gorm:"size:50;not null" json:"actor_role"`
	Action     string     `gorm:"size:100;not null;index" json:"action"`
	TargetType string     `gorm:"size:100;not null" json:"target_type"`
	TargetID   *uuid.UUID `gorm:"type:uuid;index" json:"target_id,omitempty"`
	Reason     string     `gorm:"size:500" json:"reason,omitempty"`
	Metadata   []byte     `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Relationships
	Actor User `gorm:"foreignKey:ActorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
