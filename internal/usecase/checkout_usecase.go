package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutUsecase は注文確定の業務ロジック。
// カート読込・在庫減算・注文作成・カート削除を1トランザクションで行う。
type CheckoutUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, logger *zap.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, logger: logger}
}

type CheckoutInput struct {
	PaymentMethod string

	// 配送先（注文にスナップショットとして保存）
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	ZipCode  string
}

func (in CheckoutInput) validate() error {
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return NewHTTPError(http.StatusBadRequest, "payment_method is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return NewHTTPError(http.StatusBadRequest, "full_name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return NewHTTPError(http.StatusBadRequest, "address is required")
	}
	return nil
}

// PlaceOrder は注文を確定する。ゲストは確定できない（先にログイン）。
// 単価は確定時点の商品価格で凍結する。
// どれか1つでも在庫が足りなければ全体を取り消す。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID string, in CheckoutInput) (OrderOutput, error) {
	if userID == "" || model.Identity(userID).IsGuest() {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return OrderOutput{}, err
	}

	identity := model.UserIdentity(userID)

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cartItems, err := r.CartItems().ListByIdentity(ctx, identity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//在庫を確定時に再チェックして減らす
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				// 最新の残数を添えて返す（Txはここでロールバック）
				current, err := r.Products().FindByID(ctx, ci.ProductID)
				available := p.Stock
				if err == nil {
					available = current.Stock
				}
				return &InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   available,
				}
			}

			//単価は確定時点の価格で凍結
			now := time.Now()
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			})

			total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		// 注文作成
		now := time.Now()
		order := model.Order{
			UserID:         userID,
			OrderedAt:      now,
			TotalAmount:    total,
			Status:         model.OrderStatusProcessing,
			PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
			TransactionRef: uuid.NewString(),
			FullName:       strings.TrimSpace(in.FullName),
			Email:          strings.TrimSpace(in.Email),
			Phone:          strings.TrimSpace(in.Phone),
			Address:        strings.TrimSpace(in.Address),
			City:           strings.TrimSpace(in.City),
			ZipCode:        strings.TrimSpace(in.ZipCode),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//確定したカートは空にする（二重注文防止）
		if err := r.CartItems().DeleteByIdentity(ctx, identity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		if _, ok := AsInsufficientStock(err); ok {
			return OrderOutput{}, err
		}
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "transaction failure")
	}

	u.logger.Info("order placed",
		zap.Int64("order_id", out.ID),
		zap.String("user_id", userID),
		zap.String("total", out.TotalAmount.String()),
	)
	return out, nil
}
