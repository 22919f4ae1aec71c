package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

// セット構成の保存・取得の約束（ownerで必ず絞る）
type CompositionRepository interface {
	ListByBundle(ctx context.Context, ownerID int64, bundleSKU string) ([]model.SKUComposition, error)
	DeleteByBundle(ctx context.Context, ownerID int64, bundleSKU string) error
	CreateBulk(ctx context.Context, rows []model.SKUComposition) error
}
