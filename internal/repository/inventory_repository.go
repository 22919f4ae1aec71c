package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

// 出荷による在庫引き落とし
type StockDeduction struct {
	OwnerID   int64
	VariantID int64
	OrderID   int64
	Quantity  int64
	Note      string
}

// 手動の在庫調整（Deltaは符号付き）
type StockAdjustment struct {
	OwnerID   int64
	VariantID int64
	Delta     int64
	Note      string
}

type MovementFilter struct {
	OwnerID   int64
	VariantID int64
	Limit     int
}

// 在庫カウンタの更新と履歴の追記をまとめた約束。
// 呼び出し側のトランザクション内で使うこと
type InventoryRepository interface {
	// 在庫を減らして sale 履歴を1件作る（マイナス在庫も許可）
	Deduct(ctx context.Context, d StockDeduction) (int64, error)

	// 在庫を増減して adjustment 履歴を1件作る
	Adjust(ctx context.Context, a StockAdjustment) (int64, error)

	ListMovements(ctx context.Context, f MovementFilter) ([]model.StockMovement, error)
}
