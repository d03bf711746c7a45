package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newCheckoutUC() (*usecase.CheckoutUsecase, *TxManagerMock, *TxReposMock) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	cartItems := new(CartItemRepoMock)
	inventory := new(InventoryRepoMock)
	products := new(ProductRepoMock)

	repos := &TxReposMock{
		OrdersMock:     orders,
		OrderItemsMock: orderItems,
		CartItemsMock:  cartItems,
		InventoryMock:  inventory,
		ProductsMock:   products,
	}

	tx := &TxManagerMock{Repos: repos}
	return usecase.NewCheckoutUsecase(tx, zap.NewNop()), tx, repos
}

func validCheckoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		PaymentMethod: "card",
		FullName:      "Taro Yamada",
		Email:         "taro@example.com",
		Address:       "1-2-3 Chiyoda",
		City:          "Tokyo",
		ZipCode:       "100-0001",
	}
}

// 成立時：価格凍結・合計・カート削除・PROCESSING
func TestPlaceOrder_Success(t *testing.T) {
	uc, tx, repos := newCheckoutUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	userID := "user-1"
	identity := model.UserIdentity(userID)

	cartLines := []model.CartItem{
		{ID: 1, UserID: userID, ProductID: 101, Quantity: 2},
		{ID: 2, UserID: userID, ProductID: 102, Quantity: 2},
	}
	mug := model.Product{ID: 101, Name: "mug", Price: decimal.RequireFromString("4.00"), Stock: 5}
	pot := model.Product{ID: 102, Name: "pot", Price: decimal.RequireFromString("6.00"), Stock: 5}

	cartItems := repos.CartItemsMock.(*CartItemRepoMock)
	products := repos.ProductsMock.(*ProductRepoMock)
	inventory := repos.InventoryMock.(*InventoryRepoMock)
	orders := repos.OrdersMock.(*OrderRepoMock)
	orderItems := repos.OrderItemsMock.(*OrderItemRepoMock)

	cartItems.On("ListByIdentity", mock.Anything, identity).Return(cartLines, nil)
	products.On("FindByID", mock.Anything, int64(101)).Return(mug, nil)
	products.On("FindByID", mock.Anything, int64(102)).Return(pot, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(true, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(102), int64(2)).Return(true, nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).Return(int64(77), nil)
	orderItems.On("CreateBulk", mock.Anything, int64(77), mock.Anything).Return(nil)
	cartItems.On("DeleteByIdentity", mock.Anything, identity).Return(nil)

	out, err := uc.PlaceOrder(context.Background(), userID, validCheckoutInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.ID)
	assert.Equal(t, string(model.OrderStatusProcessing), out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	assert.NotEmpty(t, out.TransactionRef)
	assert.Len(t, out.Items, 2)
	// 単価は確定時点の商品価格で凍結される
	assert.True(t, out.Items[0].Price.Equal(mug.Price))

	cartItems.AssertExpectations(t)
	inventory.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

// 在庫不足：注文もカート削除も起きない（全体ロールバック）
func TestPlaceOrder_InsufficientStockAborts(t *testing.T) {
	uc, tx, repos := newCheckoutUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	userID := "user-1"
	identity := model.UserIdentity(userID)

	cartLines := []model.CartItem{
		{ID: 1, UserID: userID, ProductID: 101, Quantity: 2},
		{ID: 2, UserID: userID, ProductID: 102, Quantity: 3},
	}
	mug := model.Product{ID: 101, Name: "mug", Price: decimal.RequireFromString("4.00"), Stock: 5}
	pot := model.Product{ID: 102, Name: "pot", Price: decimal.RequireFromString("6.00"), Stock: 1}

	cartItems := repos.CartItemsMock.(*CartItemRepoMock)
	products := repos.ProductsMock.(*ProductRepoMock)
	inventory := repos.InventoryMock.(*InventoryRepoMock)
	orders := repos.OrdersMock.(*OrderRepoMock)

	cartItems.On("ListByIdentity", mock.Anything, identity).Return(cartLines, nil)
	products.On("FindByID", mock.Anything, int64(101)).Return(mug, nil)
	products.On("FindByID", mock.Anything, int64(102)).Return(pot, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(true, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(102), int64(3)).Return(false, nil)

	_, err := uc.PlaceOrder(context.Background(), userID, validCheckoutInput())

	se, ok := usecase.AsInsufficientStock(err)
	assert.True(t, ok)
	assert.Equal(t, int64(102), se.ProductID)
	assert.Equal(t, int64(1), se.Available)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cartItems.AssertNotCalled(t, "DeleteByIdentity", mock.Anything, mock.Anything)
}

// 空カートでは注文できない
func TestPlaceOrder_EmptyCart(t *testing.T) {
	uc, tx, repos := newCheckoutUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	userID := "user-1"
	identity := model.UserIdentity(userID)

	cartItems := repos.CartItemsMock.(*CartItemRepoMock)
	cartItems.On("ListByIdentity", mock.Anything, identity).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(context.Background(), userID, validCheckoutInput())

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// ゲストは注文できない
func TestPlaceOrder_GuestUnauthorized(t *testing.T) {
	uc, tx, _ := newCheckoutUC()

	guestID := model.NewGuestIdentity()
	_, err := uc.PlaceOrder(context.Background(), guestID.String(), validCheckoutInput())

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_MissingShipping(t *testing.T) {
	uc, tx, _ := newCheckoutUC()

	in := validCheckoutInput()
	in.Address = ""

	_, err := uc.PlaceOrder(context.Background(), "user-1", in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}
