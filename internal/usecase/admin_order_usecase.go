package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	items  repo.OrderItemRepository
	audits repo.AuditLogRepository
	logger *slog.Logger
}

func NewAdminOrderUsecase(
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	audits repo.AuditLogRepository,
	logger *slog.Logger,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, items: items, audits: audits, logger: logger}
}

type AdminOrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Status != "" {
		switch model.OrderStatus(f.Status) {
		case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusCompleted, model.OrderStatusCancelled:
		default:
			return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
		}
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return AdminOrderListOutput{Orders: orders, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderOutput{Order: o, Items: items}, nil
}

type UpdateOrderStatusInput struct {
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

// UpdateStatus moves an order along its lifecycle. Completed and
// cancelled are terminal.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorID int64, orderID int64, in UpdateOrderStatusInput) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var next model.OrderStatus
	switch model.OrderStatus(in.Status) {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusCompleted, model.OrderStatusCancelled:
		next = model.OrderStatus(in.Status)
	default:
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.Status == model.OrderStatusCompleted || o.Status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order status is final")
	}

	prev := o.Status
	if err := u.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	o.Status = next

	if in.ScheduledDate != nil {
		if err := u.orders.UpdateSchedule(ctx, orderID, in.ScheduledDate); err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.ScheduledDate = in.ScheduledDate
	}

	u.writeAudit(ctx, actorID, model.AuditActionUpdateOrderStatus, orderID,
		map[string]any{"status": prev},
		map[string]any{"status": next},
	)

	return o, nil
}

// audit failures are logged, never surfaced; the state change already happened
func (u *AdminOrderUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, orderID int64, before any, after any) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	err := u.audits.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		u.logger.Error("audit write failed", "action", string(action), "order_id", orderID, "error", err.Error())
	}
}
