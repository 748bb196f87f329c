package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// Removes every line except the post item. Edits replace non-post
	// lines wholesale; the post line is immutable.
	DeleteNonPostByOrderID(ctx context.Context, orderID int64) error
}
