package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	promoCodes  repo.PromoCodeRepository
	promoUsages repo.PromoCodeUsageRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) PromoCodes() repo.PromoCodeRepository           { return r.promoCodes }
func (r *txReposGorm) PromoCodeUsages() repo.PromoCodeUsageRepository { return r.promoUsages }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// rebuild the repos on the tx-scoped DB handle
		r := &txReposGorm{
			orders:      NewOrderGormRepository(tx),
			orderItems:  NewOrderItemGormRepository(tx),
			promoCodes:  NewPromoCodeGormRepository(tx),
			promoUsages: NewPromoCodeUsageGormRepository(tx),
		}
		return fn(r)
	})
}
