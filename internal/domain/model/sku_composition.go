package model

import "time"

// セットSKU → 構成SKU の対応。保存のたびに全削除→再作成される
type SKUComposition struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_composition_owner_bundle_component" json:"user_id"`
	BundleSKU    string    `gorm:"column:bundle_sku;type:varchar(100);not null;uniqueIndex:idx_composition_owner_bundle_component" json:"bundle_sku"`
	ComponentSKU string    `gorm:"column:component_sku;type:varchar(100);not null;uniqueIndex:idx_composition_owner_bundle_component" json:"component_sku"`
	Quantity     int64     `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
