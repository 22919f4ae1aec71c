package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"gorm.io/gorm"
)

type CompositionGormRepository struct {
	db *gorm.DB
}

func NewCompositionGormRepository(db *gorm.DB) *CompositionGormRepository {
	return &CompositionGormRepository{db: db}
}

func (r *CompositionGormRepository) ListByBundle(ctx context.Context, ownerID int64, bundleSKU string) ([]model.SKUComposition, error) {
	var rows []model.SKUComposition
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bundle_sku = ?", ownerID, bundleSKU).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return []model.SKUComposition{}, storageError("list compositions", err)
	}
	return rows, nil
}

func (r *CompositionGormRepository) DeleteByBundle(ctx context.Context, ownerID int64, bundleSKU string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bundle_sku = ?", ownerID, bundleSKU).
		Delete(&model.SKUComposition{}).Error
	if err != nil {
		return storageError("delete compositions", err)
	}
	return nil
}

func (r *CompositionGormRepository) CreateBulk(ctx context.Context, rows []model.SKUComposition) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return storageError("create compositions", err)
	}
	return nil
}
