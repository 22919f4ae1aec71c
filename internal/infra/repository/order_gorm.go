package repository

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, storageError("find order", err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListPendingDeduction(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	//期間内のピックアップ履歴があるか
	picked := r.db.WithContext(ctx).
		Model(&model.OrderStatusHistory{}).
		Select("1").
		Where("order_status_histories.order_id = orders.id").
		Where("order_status_histories.pickup_time IS NOT NULL").
		Where("order_status_histories.pickup_time >= ? AND order_status_histories.pickup_time <= ?", from, to)

	var orders []model.Order
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("orders.is_stock_deducted = ?", false).
		Where("EXISTS (?)", picked).
		Order("orders.id asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, storageError("list pending deduction", err)
	}
	return orders, nil
}

func (r *OrderGormRepository) MarkStockDeducted(ctx context.Context, orderID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND is_stock_deducted = ?", orderID, false).
		Update("is_stock_deducted", true)

	if res.Error != nil {
		return false, storageError("mark stock deducted", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return storageError("update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
