package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock}
}

type OrderItemOutput struct {
	VariantSKU  string `json:"variant_sku"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type StatusHistoryOutput struct {
	Status     string     `json:"status"`
	PickupTime *time.Time `json:"pickup_time"`
	CreatedAt  time.Time  `json:"created_at"`
}

type OrderOutput struct {
	ID              int64                 `json:"id"`
	SerialNumber    string                `json:"serial_number"`
	UserID          int64                 `json:"user_id"`
	Status          string                `json:"status"`
	IsStockDeducted bool                  `json:"is_stock_deducted"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	CreatedAt       time.Time             `json:"created_at"`
	Items           []OrderItemOutput     `json:"items"`
	History         []StatusHistoryOutput `json:"history"`
}

type RecordStatusInput struct {
	Status     string
	PickupTime *time.Time
}

func (u *OrderUsecase) GetOrder(ctx context.Context, ownerID int64, orderID int64) (OrderOutput, error) {
	if ownerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.findOwned(ctx, r, ownerID, orderID)
		if err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		history, err := r.StatusHistories().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, history)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ステータス履歴を追加する。picked_up で時刻がなければ現在時刻をピックアップ時刻にする
func (u *OrderUsecase) RecordStatus(ctx context.Context, ownerID int64, orderID int64, in RecordStatusInput) error {
	if ownerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	status := model.OrderStatus(strings.TrimSpace(in.Status))
	switch status {
	case model.OrderStatusPending, model.OrderStatusPickedUp, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		// OK
	default:
		return NewValidationError("status", "unknown status")
	}

	pickup := in.PickupTime
	if status == model.OrderStatusPickedUp && pickup == nil {
		now := u.clock.Now()
		pickup = &now
	}
	if status != model.OrderStatusPickedUp && pickup != nil {
		return NewValidationError("pickup_time", "only allowed for picked_up")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.findOwned(ctx, r, ownerID, orderID)
		if err != nil {
			return err
		}

		if _, err := r.StatusHistories().Create(ctx, model.OrderStatusHistory{
			OrderID:    orderID,
			Status:     status,
			PickupTime: pickup,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status != status {
			if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//監査ログ（RECORD_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  ownerID,
			Action:       model.AuditActionRecordOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(status) + `"}`,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) findOwned(ctx context.Context, r repo.TxRepos, ownerID int64, orderID int64) (model.Order, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != ownerID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return o, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, history []model.OrderStatusHistory) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			VariantSKU:  it.VariantSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}

	outHistory := make([]StatusHistoryOutput, 0, len(history))
	for _, h := range history {
		outHistory = append(outHistory, StatusHistoryOutput{
			Status:     string(h.Status),
			PickupTime: h.PickupTime,
			CreatedAt:  h.CreatedAt,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		SerialNumber:    o.SerialNumber,
		UserID:          o.UserID,
		Status:          string(o.Status),
		IsStockDeducted: o.IsStockDeducted,
		TotalPrice:      o.TotalPrice,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
		History:         outHistory,
	}
}
