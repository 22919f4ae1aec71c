package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, storageError("list order items", err)
	}
	return items, nil
}

type OrderStatusHistoryGormRepository struct {
	db *gorm.DB
}

func NewOrderStatusHistoryGormRepository(db *gorm.DB) *OrderStatusHistoryGormRepository {
	return &OrderStatusHistoryGormRepository{db: db}
}

func (r *OrderStatusHistoryGormRepository) Create(ctx context.Context, h model.OrderStatusHistory) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&h).Error; err != nil {
		return 0, storageError("create status history", err)
	}
	return h.ID, nil
}

func (r *OrderStatusHistoryGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusHistory, error) {
	var rows []model.OrderStatusHistory
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&rows).Error
	if err != nil {
		return []model.OrderStatusHistory{}, storageError("list status history", err)
	}
	return rows, nil
}
