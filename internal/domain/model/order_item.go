package model

import "time"

// 注文明細。作成後は読み取り専用
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"order_id"`
	VariantSKU  string    `gorm:"column:variant_sku;type:varchar(100);not null" json:"variant_sku"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
