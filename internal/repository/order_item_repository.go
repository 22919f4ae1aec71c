package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type OrderStatusHistoryRepository interface {
	Create(ctx context.Context, h model.OrderStatusHistory) (int64, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusHistory, error)
}
