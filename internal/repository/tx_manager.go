package repository

import "context"

// Repositories available inside one transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	PromoCodes() PromoCodeRepository
	PromoCodeUsages() PromoCodeUsageRepository
}

// Hides tx begin/commit/rollback from usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
