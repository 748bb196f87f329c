package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PromoCodeGormRepository struct {
	db *gorm.DB
}

func NewPromoCodeGormRepository(db *gorm.DB) *PromoCodeGormRepository {
	return &PromoCodeGormRepository{db: db}
}

func (r *PromoCodeGormRepository) FindByCode(ctx context.Context, code string) (model.PromoCode, error) {
	var p model.PromoCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PromoCode{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PromoCode{}, err
	}
	return p, nil
}

func (r *PromoCodeGormRepository) FindByID(ctx context.Context, promoID int64) (model.PromoCode, error) {
	var p model.PromoCode
	err := r.db.WithContext(ctx).Where("id = ?", promoID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PromoCode{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PromoCode{}, err
	}
	return p, nil
}

func (r *PromoCodeGormRepository) Create(ctx context.Context, promo model.PromoCode) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&promo).Error; err != nil {
		return 0, err
	}
	return promo.ID, nil
}

func (r *PromoCodeGormRepository) List(ctx context.Context, page int, limit int) ([]model.PromoCode, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.PromoCode{}).Count(&total).Error; err != nil {
		return []model.PromoCode{}, 0, err
	}

	var items []model.PromoCode
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.PromoCode{}, 0, err
	}

	return items, total, nil
}

func (r *PromoCodeGormRepository) Deactivate(ctx context.Context, promoID int64) error {
	res := r.db.WithContext(ctx).Model(&model.PromoCode{}).
		Where("id = ?", promoID).
		Update("is_active", false)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PromoCodeGormRepository) Delete(ctx context.Context, promoID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", promoID).
		Delete(&model.PromoCode{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
