package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateSchedule(ctx context.Context, orderID int64, scheduledDate *time.Time) error
	UpdatePayment(ctx context.Context, orderID int64, status model.PaymentStatus, ref string) error

	// Writes recomputed totals/notes. Fails with ErrVersionConflict when
	// the stored version no longer matches expectedVersion.
	UpdateTotals(ctx context.Context, order model.Order, expectedVersion int) error

	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
