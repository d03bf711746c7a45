package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

// GormTransactionManager はGORMのトランザクション上で
// 各リポジトリを組み直して処理を実行する。
type GormTransactionManager struct {
	db *gorm.DB
}

func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

func (m *GormTransactionManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txReposGorm{tx: tx})
	})
}

// txReposGorm はTxハンドル上に組み直したリポジトリ群。
type txReposGorm struct {
	tx *gorm.DB
}

func (r *txReposGorm) Orders() repo.OrderRepository {
	return NewOrderGormRepository(r.tx)
}

func (r *txReposGorm) OrderItems() repo.OrderItemRepository {
	return NewOrderItemGormRepository(r.tx)
}

func (r *txReposGorm) CartItems() repo.CartItemRepository {
	return NewCartItemGormRepository(r.tx)
}

func (r *txReposGorm) Inventory() repo.InventoryRepository {
	return NewInventoryGormRepository(r.tx)
}

func (r *txReposGorm) Products() repo.ProductRepository {
	return NewProductGormRepository(r.tx)
}
