package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 在庫の増減と調整履歴。
// stockを書き換えるのはここだけ（カート編集は読むだけ）。
type InventoryRepository interface {
	SetStock(ctx context.Context, productID int64, newStock int64) error
	// 在庫が足りるときだけ減らす。足りなければ false。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
	CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error
}
