package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// 遷移できるのは PROCESSING→SHIPPED→COMPLETED と、SHIPPED前のキャンセルだけ。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// 注文。作成後はステータス以外不変。
// 配送先は注文時点のスナップショットを持つ。
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string          `gorm:"type:varchar(64);not null;index" json:"user_id"`
	OrderedAt      time.Time       `gorm:"not null" json:"ordered_at"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod  string          `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionRef string          `gorm:"type:varchar(64)" json:"transaction_ref"`

	// 配送先スナップショット
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	Address  string `gorm:"type:varchar(500);not null" json:"address"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	ZipCode  string `gorm:"type:varchar(20)" json:"zip_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
