package usecase

import (
	"net/http"

	"storefront/internal/domain/model"
)

// CheckStock はカートに載せたい数量が妥当かを判定する。
// 数量は1以上、かつ現在在庫以下であること。
// 在庫を減らすわけではない。確定時はチェックアウトの条件付きUPDATEが最終判定になる。
func CheckStock(p model.Product, requestedQty int64) error {
	if requestedQty < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if requestedQty > p.Stock {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock,
		}
	}
	return nil
}

// ClampToStock は数量を在庫上限に丸める（マージ用）。
func ClampToStock(p model.Product, qty int64) int64 {
	if qty > p.Stock {
		return p.Stock
	}
	return qty
}
