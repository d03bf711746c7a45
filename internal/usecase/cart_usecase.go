package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 主体はIdentity（ユーザーIDまたはゲストID）で、両者を区別しない。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// CartItemResponse の price は現在価格。カート表示は常に最新の価格を映す。
type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Stock     int64           `json:"stock"`
	LowStock  bool            `json:"low_stock"`
}

type CartResponse struct {
	Items   []CartItemResponse `json:"items"`
	Total   decimal.Decimal    `json:"total"`
	Count   int64              `json:"cart_count"`
	IsGuest bool               `json:"is_guest"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得。明細が無ければ空を返す。
func (u *CartUsecase) GetCart(ctx context.Context, identity model.Identity) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, identity)
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, identity model.Identity, in AddCartInput) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（削除済みは対象外）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 既存数量＋追加分が在庫を超えないか
	items, err := u.cartItemRepo.ListByIdentity(ctx, identity)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}

	if err := CheckStock(p, existingQty+in.Quantity); err != nil {
		return CartResponse{}, err
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertByIdentityAndProduct(ctx, identity, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, identity)
}

// SetQuantity は数量変更（所有チェック＋在庫チェック）。
// 0以下を指定したら明細削除として扱う。
func (u *CartUsecase) SetQuantity(ctx context.Context, identity model.Identity, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.findOwned(ctx, identity, cartItemID)
	if err != nil {
		return CartResponse{}, err
	}

	if in.Quantity <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, identity)
	}

	//商品の在庫チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := CheckStock(p, in.Quantity); err != nil {
		return CartResponse{}, err
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, identity)
}

// RemoveItem は明細削除。すでに無い明細は成功扱い（何度呼んでも同じ）。
func (u *CartUsecase) RemoveItem(ctx context.Context, identity model.Identity, cartItemID int64) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return u.buildCartResponse(ctx, identity)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != identity.String() {
		//他人の明細は「存在しない扱い」にする
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, identity)
}

// Clear はカートを空にする。
func (u *CartUsecase) Clear(ctx context.Context, identity model.Identity) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartItemRepo.DeleteByIdentity(ctx, identity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, identity)
}

// Count はバッジ用の合計数量。カート表示と同じ集計なので
// 削除済み商品の明細は数えない。失敗しても0を返すだけでページは壊さない。
func (u *CartUsecase) Count(ctx context.Context, identity model.Identity) int64 {
	if identity == "" {
		return 0
	}

	out, err := u.buildCartResponse(ctx, identity)
	if err != nil {
		return 0
	}
	return out.Count
}

// findOwned は明細を取得して持ち主を確認する。
// 他人の明細は「存在しない扱い」にする。
func (u *CartUsecase) findOwned(ctx context.Context, identity model.Identity, cartItemID int64) (model.CartItem, error) {
	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != identity.String() {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return item, nil
}

// Identityの明細をまとめてCartResponseを作る。
// 削除済み商品の明細は表示から除く。
func (u *CartUsecase) buildCartResponse(ctx context.Context, identity model.Identity) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByIdentity(ctx, identity)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero
	var count int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Stock:     p.Stock,
			LowStock:  p.IsLowStock(),
		})

		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		count += it.Quantity
	}

	return CartResponse{
		Items:   respItems,
		Total:   total,
		Count:   count,
		IsGuest: identity.IsGuest(),
	}, nil
}
