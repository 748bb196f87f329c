package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) FindByID(ctx context.Context, itemID int64) (model.InventoryItem, error) {
	var it model.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryItem{}, err
	}
	return it, nil
}

func (r *InventoryGormRepository) ListByUserID(ctx context.Context, userID int64, kind *model.InventoryKind) ([]model.InventoryItem, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}

	var items []model.InventoryItem
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return []model.InventoryItem{}, err
	}
	return items, nil
}

func (r *InventoryGormRepository) Create(ctx context.Context, item model.InventoryItem) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (r *InventoryGormRepository) Update(ctx context.Context, item model.InventoryItem) error {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"label":     item.Label,
			"notes":     item.Notes,
			"is_active": item.IsActive,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) Delete(ctx context.Context, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&model.InventoryItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
