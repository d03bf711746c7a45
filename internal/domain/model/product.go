package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Stock             int64           `gorm:"not null" json:"stock"`
	LowStockThreshold int64           `gorm:"not null;default:5" json:"low_stock_threshold"`
	CategoryID        int64           `gorm:"not null;index" json:"category_id"`
	ImageURL          string          `gorm:"type:varchar(500)" json:"image_url"`
	IsOnSale          bool            `gorm:"not null;default:false" json:"is_on_sale"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// 在庫が閾値以下かどうか
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
