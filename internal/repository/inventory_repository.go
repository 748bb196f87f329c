package repository

import (
	"context"

	"app/internal/domain/model"
)

type InventoryRepository interface {
	FindByID(ctx context.Context, itemID int64) (model.InventoryItem, error)
	ListByUserID(ctx context.Context, userID int64, kind *model.InventoryKind) ([]model.InventoryItem, error)
	Create(ctx context.Context, item model.InventoryItem) (int64, error)
	Update(ctx context.Context, item model.InventoryItem) error
	Delete(ctx context.Context, itemID int64) error
}
