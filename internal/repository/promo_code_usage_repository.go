package repository

import (
	"context"

	"app/internal/domain/model"
)

type PromoCodeUsageRepository interface {
	Create(ctx context.Context, usage model.PromoCodeUsage) error
	CountByUserAndPromo(ctx context.Context, userID int64, promoID int64) (int64, error)
	CountByPromo(ctx context.Context, promoID int64) (int64, error)
}
