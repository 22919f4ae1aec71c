package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	// DB由来の想定外エラー（infra側でこれに包んで返す）
	ErrStorage = errors.New("storage failure")
)

// 構成候補の検索条件
type CandidateQuery struct {
	OwnerID    int64
	Q          string
	ExcludeSKU string
	// 重複除去前に取る件数
	FetchLimit int
}

// 構成候補（variant + product の結合結果）
type VariantCandidate struct {
	VariantID      int64  `json:"variant_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	ProductName    string `json:"product_name"`
	WarehouseStock int64  `json:"warehouse_stock"`
}

// バリアントの取得だけを約束。ownerIDは必ず呼び出し側から渡す
type VariantRepository interface {
	FindByID(ctx context.Context, ownerID int64, id int64) (model.ProductVariant, error)
	FindBySKU(ctx context.Context, ownerID int64, sku string) (model.ProductVariant, error)

	//単品SKUの候補検索。結合のため同じSKUが複数行返ることがある
	SearchStandalone(ctx context.Context, q CandidateQuery) ([]VariantCandidate, error)
}
