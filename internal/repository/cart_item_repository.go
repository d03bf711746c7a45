package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// カート明細の永続化。Identity（ユーザーIDまたはゲストID）単位でスコープする。
type CartItemRepository interface {
	ListByIdentity(ctx context.Context, identity model.Identity) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 同一商品はプラス
	UpsertByIdentityAndProduct(ctx context.Context, identity model.Identity, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	DeleteByIdentity(ctx context.Context, identity model.Identity) error
	// 商品削除時のカスケード
	DeleteByProductID(ctx context.Context, productID int64) error
	// 明細の持ち主を付け替える（ゲスト→ユーザー）
	ReassignIdentity(ctx context.Context, cartItemID int64, to model.Identity) error
}
