package model

import "time"

type SKUType string

const (
	// 単品
	SKUTypeMandiri SKUType = "mandiri"
	// セット商品（構成はSKUCompositionで管理）
	SKUTypeBundle SKUType = "bundle"
)

// 商品バリアント。SKUはユーザーごとに一意。
// WarehouseStock は直接代入せず、必ず在庫履歴を残す操作で更新する
type ProductVariant struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      int64     `gorm:"not null;index" json:"product_id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_variant_owner_sku" json:"user_id"`
	SKU            string    `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_variant_owner_sku" json:"sku"`
	Name           string    `gorm:"type:varchar(255);not null;default:''" json:"name"`
	SKUType        SKUType   `gorm:"column:sku_type;type:varchar(20);not null;default:'mandiri'" json:"sku_type"`
	WarehouseStock int64     `gorm:"not null;default:0" json:"warehouse_stock"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
