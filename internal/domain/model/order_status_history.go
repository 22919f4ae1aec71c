package model

import "time"

// 注文ステータス履歴。PickupTime が入っている行が在庫引当のトリガー
type OrderStatusHistory struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64       `gorm:"not null;index" json:"order_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	PickupTime *time.Time  `gorm:"index" json:"pickup_time"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
