package repository

import (
	"context"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫を減らして sale 履歴を残す。在庫の下限チェックはしない
func (r *InventoryGormRepository) Deduct(ctx context.Context, d repo.StockDeduction) (int64, error) {
	if err := r.shift(ctx, d.OwnerID, d.VariantID, -d.Quantity); err != nil {
		return 0, err
	}

	orderID := d.OrderID
	mv := model.StockMovement{
		UserID:    d.OwnerID,
		VariantID: d.VariantID,
		OrderID:   &orderID,
		Type:      model.StockMovementSale,
		Quantity:  -d.Quantity,
		Note:      d.Note,
	}
	if err := r.db.WithContext(ctx).Create(&mv).Error; err != nil {
		return 0, storageError("create stock movement", err)
	}
	return mv.ID, nil
}

// 手動調整
func (r *InventoryGormRepository) Adjust(ctx context.Context, a repo.StockAdjustment) (int64, error) {
	if err := r.shift(ctx, a.OwnerID, a.VariantID, a.Delta); err != nil {
		return 0, err
	}

	mv := model.StockMovement{
		UserID:    a.OwnerID,
		VariantID: a.VariantID,
		Type:      model.StockMovementAdjustment,
		Quantity:  a.Delta,
		Note:      a.Note,
	}
	if err := r.db.WithContext(ctx).Create(&mv).Error; err != nil {
		return 0, storageError("create stock movement", err)
	}
	return mv.ID, nil
}

func (r *InventoryGormRepository) ListMovements(ctx context.Context, f repo.MovementFilter) ([]model.StockMovement, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND variant_id = ?", f.OwnerID, f.VariantID).
		Order("id desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return []model.StockMovement{}, storageError("list stock movements", err)
	}
	return rows, nil
}

// warehouse_stock を相対更新する（代入はしない）
func (r *InventoryGormRepository) shift(ctx context.Context, ownerID int64, variantID int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Where("id = ? AND user_id = ?", variantID, ownerID).
		Update("warehouse_stock", gorm.Expr("warehouse_stock + ?", delta))

	if res.Error != nil {
		return storageError("update warehouse stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
