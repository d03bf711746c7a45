package model

import "time"

// カートの明細。
// (identity, product) で一意。同一商品の追加は1行に加算する。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_identity_product,priority:1" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_identity_product,priority:2;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	IsGuest   bool      `gorm:"not null;default:false" json:"is_guest"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
