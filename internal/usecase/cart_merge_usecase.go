package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// CartMergeUsecase はログイン時にゲストカートをユーザーカートへ統合する。
// 何度呼んでも結果は同じ（空のゲストカートに対しては何もしない）。
type CartMergeUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

func NewCartMergeUsecase(tx repo.TransactionManager, logger *zap.Logger) *CartMergeUsecase {
	return &CartMergeUsecase{tx: tx, logger: logger}
}

// Merge はゲストカートの明細をユーザーカートへ移す。
//   - 同一商品が両方にある: 数量を合算し、在庫を超える分は在庫上限に丸める
//   - ゲスト側にしかない: 在庫上限に丸めて持ち主を付け替える（在庫0なら破棄）
//   - 商品が削除済み: 明細ごと破棄
//
// 全体を1トランザクションで行い、途中で失敗したら何も変わらない。
func (u *CartMergeUsecase) Merge(ctx context.Context, guestID model.Identity, userID string) error {
	if !guestID.IsGuest() {
		return NewHTTPError(http.StatusBadRequest, "invalid guest id")
	}
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	userIdentity := model.UserIdentity(userID)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		guestItems, err := r.CartItems().ListByIdentity(ctx, guestID)
		if err != nil {
			return err
		}
		if len(guestItems) == 0 {
			return nil
		}

		userItems, err := r.CartItems().ListByIdentity(ctx, userIdentity)
		if err != nil {
			return err
		}

		userQtyByProduct := make(map[int64]model.CartItem, len(userItems))
		for _, it := range userItems {
			userQtyByProduct[it.ProductID] = it
		}

		for _, gi := range guestItems {
			p, err := r.Products().FindByID(ctx, gi.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				// 商品が消えた明細は引き継がない
				u.logger.Info("merge: dropping line for removed product",
					zap.Int64("product_id", gi.ProductID),
					zap.String("user_id", userID),
				)
				if err := r.CartItems().DeleteByID(ctx, gi.ID); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			existing, both := userQtyByProduct[gi.ProductID]
			if both {
				// 合算して在庫上限に丸める
				merged := ClampToStock(p, existing.Quantity+gi.Quantity)
				if merged != existing.Quantity+gi.Quantity {
					u.logger.Info("merge: clamped quantity to stock",
						zap.Int64("product_id", gi.ProductID),
						zap.Int64("requested", existing.Quantity+gi.Quantity),
						zap.Int64("clamped", merged),
						zap.String("user_id", userID),
					)
				}
				if merged != existing.Quantity {
					if err := r.CartItems().UpdateQuantity(ctx, existing.ID, merged); err != nil {
						return err
					}
				}
				if err := r.CartItems().DeleteByID(ctx, gi.ID); err != nil {
					return err
				}
				continue
			}

			// ユーザー側に無い商品は持ち主を付け替える
			qty := ClampToStock(p, gi.Quantity)
			if qty <= 0 {
				u.logger.Info("merge: dropping line for out-of-stock product",
					zap.Int64("product_id", gi.ProductID),
					zap.String("user_id", userID),
				)
				if err := r.CartItems().DeleteByID(ctx, gi.ID); err != nil {
					return err
				}
				continue
			}
			if qty != gi.Quantity {
				u.logger.Info("merge: clamped quantity to stock",
					zap.Int64("product_id", gi.ProductID),
					zap.Int64("requested", gi.Quantity),
					zap.Int64("clamped", qty),
					zap.String("user_id", userID),
				)
				if err := r.CartItems().UpdateQuantity(ctx, gi.ID, qty); err != nil {
					return err
				}
			}
			if err := r.CartItems().ReassignIdentity(ctx, gi.ID, userIdentity); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return err
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
