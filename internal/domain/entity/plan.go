package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// InstallmentPlan represents a customer's payment plan record.
// Totals and status on the dashboard are derived from financed items and
// receipts; the plan row anchors discrete payments and history.
type InstallmentPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount float64        `gorm:"not null" json:"total_amount"`
	StartDate   time.Time      `gorm:"not null" json:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Payments []PlanPayment `gorm:"foreignKey:PlanID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new plan
func (p *InstallmentPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallmentPlan model
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

// PlanPayment represents a discrete payment recorded against a plan
type PlanPayment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"plan_id"`
	Amount    float64            `gorm:"not null" json:"amount"`
	Status    enum.PaymentStatus `gorm:"default:0;index" json:"status"`
	Method    enum.PaymentMethod `gorm:"not null" json:"payment_method"`
	PaidAt    time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relationships
	Plan InstallmentPlan `gorm:"foreignKey:PlanID" json:"-"`
	User User            `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *PlanPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PlanPayment model
func (PlanPayment) TableName() string {
	return "plan_payments"
}
