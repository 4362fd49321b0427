package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// Receipt represents an uploaded proof of payment awaiting manual review.
// Only approved receipts count toward a customer's dues.
type Receipt struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanKind   enum.PlanKind      `gorm:"not null;index" json:"plan"`
	Amount     float64            `gorm:"not null" json:"amount"`
	FileURL    string             `gorm:"size:512;not null" json:"file_url"`
	FileType   string             `gorm:"size:20;not null" json:"file_type"`
	StorageKey string             `gorm:"size:512;not null" json:"-"`
	Status     enum.ReceiptStatus `gorm:"default:0;index" json:"status"`
	ApprovedAt *time.Time         `json:"approved_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// PaidAt resolves the timestamp used to bucket the receipt into a billing
// cycle: the approval time when present, otherwise the upload time.
func (r *Receipt) PaidAt() time.Time {
	if r.ApprovedAt != nil {
		return *r.ApprovedAt
	}
	return r.CreatedAt
}
