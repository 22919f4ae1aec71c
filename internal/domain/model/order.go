package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 注文（取り込みは外部）。在庫引当済みフラグは false→true の一方向のみ
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SerialNumber    string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"serial_number"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	IsStockDeducted bool            `gorm:"not null;default:false;index" json:"is_stock_deducted"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_price"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
