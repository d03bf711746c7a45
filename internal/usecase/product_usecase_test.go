package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductUC() (*usecase.ProductUsecase, *TxManagerMock, *ProductRepoMock, *CartItemRepoMock, *InventoryRepoMock, *AuditRepoMock) {
	products := new(ProductRepoMock)
	cartItems := new(CartItemRepoMock)
	inventory := new(InventoryRepoMock)
	categories := new(CategoryRepoMock)
	audit := new(AuditRepoMock)

	repos := &TxReposMock{
		ProductsMock:  products,
		CartItemsMock: cartItems,
		InventoryMock: inventory,
	}
	tx := &TxManagerMock{Repos: repos}

	return usecase.NewProductUsecase(tx, products, categories, audit), tx, products, cartItems, inventory, audit
}

// 削除・カスケード・監査は同一トランザクションの中で行う
func TestAdminDeleteProduct_CascadesAndAuditsInTx(t *testing.T) {
	uc, tx, products, cartItems, _, audit := newProductUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("SoftDelete", mock.Anything, int64(101)).Return(nil)
	cartItems.On("DeleteByProductID", mock.Anything, int64(101)).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteProduct &&
			l.ResourceType == model.AuditResourceProduct &&
			l.ResourceID == 101 &&
			l.ActorUserID == "admin-1"
	})).Return(nil)

	err := uc.AdminDeleteProduct(context.Background(), "admin-1", 101)

	assert.NoError(t, err)
	tx.AssertCalled(t, "WithinTx", mock.Anything)
	cartItems.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	uc, tx, products, cartItems, _, audit := newProductUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("SoftDelete", mock.Anything, int64(999)).Return(repo.ErrNotFound)

	err := uc.AdminDeleteProduct(context.Background(), "admin-1", 999)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	cartItems.AssertNotCalled(t, "DeleteByProductID", mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 在庫更新は差分履歴と監査ログまで同一トランザクション
func TestAdminUpdateInventory_RecordsDeltaAndAudit(t *testing.T) {
	uc, tx, products, _, inventory, audit := newProductUC()
	tx.On("WithinTx", mock.Anything).Return(nil)

	p := model.Product{ID: 101, Name: "mug", Stock: 3}
	products.On("FindByID", mock.Anything, int64(101)).Return(p, nil)
	inventory.On("SetStock", mock.Anything, int64(101), int64(10)).Return(nil)
	inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == 101 && a.Delta == 7 && a.Reason == "restock"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.BeforeJSON == `{"stock":3}` &&
			l.AfterJSON == `{"stock":10}`
	})).Return(nil)

	err := uc.AdminUpdateInventory(context.Background(), "admin-1", 101, 10, "restock")

	assert.NoError(t, err)
	inventory.AssertExpectations(t)
	audit.AssertExpectations(t)
}
