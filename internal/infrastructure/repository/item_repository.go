package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	domainRepo "github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

type financedItemRepository struct {
	db *gorm.DB
}

// NewFinancedItemRepository creates a new financed item repository
func NewFinancedItemRepository(db *gorm.DB) domainRepo.FinancedItemRepository {
	return &financedItemRepository{db: db}
}

func (r *financedItemRepository) Create(ctx context.Context, item *entity.FinancedItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *financedItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FinancedItem, error) {
	var item entity.FinancedItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *financedItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.FinancedItem, error) {
	var items []*entity.FinancedItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *financedItemRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.FinancedItem, int64, error) {
	var items []entity.FinancedItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FinancedItem{})

	if search != "" {
		query = query.Where("phone_model ILIKE ? OR user_email ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&items).Error

	return items, total, err
}

func (r *financedItemRepository) Update(ctx context.Context, item *entity.FinancedItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *financedItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.FinancedItem{}, "id = ?", id).Error
}

func (r *financedItemRepository) CountOpenByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.FinancedItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ShiftBillingAnchors applies one offset to every listed item and clears
// the owner's manual due-date override so the computed schedule wins.
func (r *financedItemRepository) ShiftBillingAnchors(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, shift time.Duration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []entity.FinancedItem
		if err := tx.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return err
		}
		for i := range items {
			anchor := items[i].AnchorDate().Add(shift)
			if err := tx.Model(&items[i]).Update("billing_anchor_date", anchor).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.User{}).
			Where("id = ?", userID).
			Update("manual_next_due_date", nil).Error
	})
}

// OverrideCreatedAt rewrites the item's creation date and realigns the
// billing anchor with it.
func (r *financedItemRepository) OverrideCreatedAt(ctx context.Context, id uuid.UUID, createdAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.FinancedItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"created_at":          createdAt,
			"billing_anchor_date": createdAt,
		}).Error
}
