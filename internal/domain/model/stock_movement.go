package model

import "time"

type StockMovementType string

const (
	StockMovementSale       StockMovementType = "sale"
	StockMovementAdjustment StockMovementType = "adjustment"
)

// 在庫の増減履歴（追記のみ）
type StockMovement struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64             `gorm:"not null;index" json:"user_id"`
	VariantID int64             `gorm:"not null;index" json:"variant_id"`
	OrderID   *int64            `gorm:"index" json:"order_id"`
	Type      StockMovementType `gorm:"type:varchar(20);not null;index" json:"type"`
	Quantity  int64             `gorm:"not null" json:"quantity"`
	Note      string            `gorm:"type:varchar(255);not null;default:''" json:"note"`
	CreatedAt time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
}
