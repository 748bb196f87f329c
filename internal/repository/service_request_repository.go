package repository

import (
	"context"

	"app/internal/domain/model"
)

type ServiceRequestListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

type ServiceRequestRepository interface {
	FindByID(ctx context.Context, id int64) (model.ServiceRequest, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.ServiceRequest, error)
	ListAdmin(ctx context.Context, f ServiceRequestListFilter) ([]model.ServiceRequest, int64, error)
	Create(ctx context.Context, sr model.ServiceRequest) (int64, error)
	Update(ctx context.Context, sr model.ServiceRequest) error
}
