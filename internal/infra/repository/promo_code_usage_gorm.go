package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type PromoCodeUsageGormRepository struct {
	db *gorm.DB
}

func NewPromoCodeUsageGormRepository(db *gorm.DB) *PromoCodeUsageGormRepository {
	return &PromoCodeUsageGormRepository{db: db}
}

func (r *PromoCodeUsageGormRepository) Create(ctx context.Context, usage model.PromoCodeUsage) error {
	return r.db.WithContext(ctx).Create(&usage).Error
}

func (r *PromoCodeUsageGormRepository) CountByUserAndPromo(ctx context.Context, userID int64, promoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PromoCodeUsage{}).
		Where("user_id = ? AND promo_code_id = ?", userID, promoID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PromoCodeUsageGormRepository) CountByPromo(ctx context.Context, promoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PromoCodeUsage{}).
		Where("promo_code_id = ?", promoID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
