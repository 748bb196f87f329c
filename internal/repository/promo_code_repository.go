package repository

import (
	"context"

	"app/internal/domain/model"
)

type PromoCodeRepository interface {
	// code must already be normalized (upper-cased, trimmed)
	FindByCode(ctx context.Context, code string) (model.PromoCode, error)
	FindByID(ctx context.Context, promoID int64) (model.PromoCode, error)
	Create(ctx context.Context, promo model.PromoCode) (int64, error)
	List(ctx context.Context, page int, limit int) ([]model.PromoCode, int64, error)
	Deactivate(ctx context.Context, promoID int64) error
	Delete(ctx context.Context, promoID int64) error
}
