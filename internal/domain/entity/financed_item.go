package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

// FinancedItem represents one phone bought on an installment plan.
// Pricing fields are nullable because older records predate the
// explicit loaned_amount column and may only carry the legacy
// total_price alias.
type FinancedItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail         string         `gorm:"size:255;not null" json:"user_email"`
	PhoneModel        string         `gorm:"size:255;not null" json:"phone_model"`
	PhoneImageURL     string         `gorm:"size:512;not null" json:"phone_image_url"`
	PlanKind          enum.PlanKind  `gorm:"not null;index" json:"plan"`
	WeeklyCycles      int            `gorm:"default:0" json:"weekly_plan,omitempty"`
	MonthlyCycles     int            `gorm:"default:0" json:"monthly_plan,omitempty"`
	DownPayment       float64        `gorm:"not null" json:"down_payment"`
	LoanedAmount      *float64       `json:"loaned_amount,omitempty"`
	PhonePrice        *float64       `json:"phone_price,omitempty"`
	LegacyTotalPrice  *float64       `gorm:"column:total_price" json:"total_price,omitempty"`
	BillingAnchorDate *time.Time     `gorm:"index" json:"billing_anchor_date,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new financed item
func (i *FinancedItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FinancedItem model
func (FinancedItem) TableName() string {
	return "financed_items"
}

// CycleCount returns the number of installments for the item's plan kind
func (i *FinancedItem) CycleCount() int {
	if i.PlanKind == enum.PlanKindMonthly {
		return i.MonthlyCycles
	}
	return i.WeeklyCycles
}

// AnchorDate resolves the date billing cycles are counted from.
// Super admins may shift the anchor; otherwise it is the creation date.
func (i *FinancedItem) AnchorDate() time.Time {
	if i.BillingAnchorDate != nil {
		return *i.BillingAnchorDate
	}
	return i.CreatedAt
}
