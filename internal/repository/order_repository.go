package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//未引当かつ期間内にピックアップされた注文（id昇順）
	ListPendingDeduction(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)

	//未引当のときだけフラグを立てる。既に立っていれば false
	MarkStockDeducted(ctx context.Context, orderID int64) (bool, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
