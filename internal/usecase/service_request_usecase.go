package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ServiceRequestUsecase struct {
	requests repo.ServiceRequestRepository
	orders   repo.OrderRepository
}

func NewServiceRequestUsecase(requests repo.ServiceRequestRepository, orders repo.OrderRepository) *ServiceRequestUsecase {
	return &ServiceRequestUsecase{requests: requests, orders: orders}
}

type CreateServiceRequestInput struct {
	OrderID int64  `json:"order_id"`
	Kind    string `json:"kind"`
	Notes   string `json:"notes"`
}

func (u *ServiceRequestUsecase) Create(ctx context.Context, userID int64, in CreateServiceRequestInput) (model.ServiceRequest, error) {
	if userID <= 0 {
		return model.ServiceRequest{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return model.ServiceRequest{}, NewHTTPError(http.StatusBadRequest, "order_id is required")
	}

	kind, err := model.ParseServiceRequestKind(in.Kind)
	if err != nil {
		return model.ServiceRequest{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	o, err := u.orders.FindByID(ctx, in.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ServiceRequest{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.ServiceRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return model.ServiceRequest{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	sr := model.ServiceRequest{
		UserID:  userID,
		OrderID: in.OrderID,
		Kind:    kind,
		Status:  model.ServiceRequestStatusOpen,
		Notes:   in.Notes,
	}

	id, err := u.requests.Create(ctx, sr)
	if err != nil {
		return model.ServiceRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	sr.ID = id
	return sr, nil
}

func (u *ServiceRequestUsecase) ListMine(ctx context.Context, userID int64) ([]model.ServiceRequest, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.requests.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if list == nil {
		list = []model.ServiceRequest{}
	}
	return list, nil
}

type ServiceRequestListOutput struct {
	Requests []model.ServiceRequest `json:"requests"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
}

func (u *ServiceRequestUsecase) ListAdmin(ctx context.Context, f repo.ServiceRequestListFilter) (ServiceRequestListOutput, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Status != "" {
		switch model.ServiceRequestStatus(f.Status) {
		case model.ServiceRequestStatusOpen, model.ServiceRequestStatusScheduled, model.ServiceRequestStatusClosed:
		default:
			return ServiceRequestListOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
		}
	}

	list, total, err := u.requests.ListAdmin(ctx, f)
	if err != nil {
		return ServiceRequestListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if list == nil {
		list = []model.ServiceRequest{}
	}
	return ServiceRequestListOutput{Requests: list, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

type UpdateServiceRequestInput struct {
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         *string    `json:"notes"`
}

func (u *ServiceRequestUsecase) UpdateAdmin(ctx context.Context, id int64, in UpdateServiceRequestInput) (model.ServiceRequest, error) {
	if id <= 0 {
		return model.ServiceRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	sr, err := u.requests.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ServiceRequest{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ServiceRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Status != "" {
		switch model.ServiceRequestStatus(in.Status) {
		case model.ServiceRequestStatusOpen, model.ServiceRequestStatusScheduled, model.ServiceRequestStatusClosed:
			sr.Status = model.ServiceRequestStatus(in.Status)
		default:
			return model.ServiceRequest{}, NewHTTPError(http.StatusBadRequest, "unknown status")
		}
	}
	if in.ScheduledDate != nil {
		sr.ScheduledDate = in.ScheduledDate
	}
	if in.Notes != nil {
		sr.Notes = *in.Notes
	}

	if err := u.requests.Update(ctx, sr); err != nil {
		return model.ServiceRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sr, nil
}
