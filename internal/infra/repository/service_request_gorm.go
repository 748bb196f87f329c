package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ServiceRequestGormRepository struct {
	db *gorm.DB
}

func NewServiceRequestGormRepository(db *gorm.DB) *ServiceRequestGormRepository {
	return &ServiceRequestGormRepository{db: db}
}

func (r *ServiceRequestGormRepository) FindByID(ctx context.Context, id int64) (model.ServiceRequest, error) {
	var sr model.ServiceRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ServiceRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.ServiceRequest, error) {
	var items []model.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.ServiceRequest{}, err
	}
	return items, nil
}

func (r *ServiceRequestGormRepository) ListAdmin(ctx context.Context, f repo.ServiceRequestListFilter) ([]model.ServiceRequest, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.ServiceRequest{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.ServiceRequest{}, 0, err
	}

	var items []model.ServiceRequest
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.ServiceRequest{}, 0, err
	}

	return items, total, nil
}

func (r *ServiceRequestGormRepository) Create(ctx context.Context, sr model.ServiceRequest) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&sr).Error; err != nil {
		return 0, err
	}
	return sr.ID, nil
}

func (r *ServiceRequestGormRepository) Update(ctx context.Context, sr model.ServiceRequest) error {
	res := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("id = ?", sr.ID).
		Updates(map[string]interface{}{
			"status":         sr.Status,
			"notes":          sr.Notes,
			"scheduled_date": sr.ScheduledDate,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
