package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

type InventoryUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

// DI
func NewInventoryUsecase(tx repo.TransactionManager, clock Clock) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, clock: clock}
}

type AdjustStockInput struct {
	Delta int64
	Note  string
}

type AdjustStockOutput struct {
	MovementID     int64 `json:"movement_id"`
	VariantID      int64 `json:"variant_id"`
	WarehouseStock int64 `json:"warehouse_stock"`
}

// 手動の在庫調整。在庫の更新と履歴・監査ログは同じTx
func (u *InventoryUsecase) AdjustStock(ctx context.Context, ownerID int64, variantID int64, in AdjustStockInput) (AdjustStockOutput, error) {
	if ownerID <= 0 {
		return AdjustStockOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if variantID <= 0 {
		return AdjustStockOutput{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if in.Delta == 0 {
		return AdjustStockOutput{}, NewValidationError("delta", "must not be zero")
	}
	note := strings.TrimSpace(in.Note)
	if note == "" || len(note) > 255 {
		return AdjustStockOutput{}, NewValidationError("note", "required (max 255)")
	}

	var out AdjustStockOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//他人のバリアントは存在しない扱い
		before, err := r.Variants().FindByID(ctx, ownerID, variantID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		mvID, err := r.Inventory().Adjust(ctx, repo.StockAdjustment{
			OwnerID:   ownerID,
			VariantID: variantID,
			Delta:     in.Delta,
			Note:      note,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		after := before.WarehouseStock + in.Delta
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  ownerID,
			Action:       model.AuditActionAdjustStock,
			ResourceType: model.AuditResourceVariant,
			ResourceID:   variantID,
			BeforeJSON:   fmt.Sprintf(`{"warehouse_stock":%d}`, before.WarehouseStock),
			AfterJSON:    fmt.Sprintf(`{"warehouse_stock":%d}`, after),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = AdjustStockOutput{MovementID: mvID, VariantID: variantID, WarehouseStock: after}
		return nil
	})
	if err != nil {
		return AdjustStockOutput{}, err
	}
	return out, nil
}

type MovementOutput struct {
	ID        int64     `json:"id"`
	OrderID   *int64    `json:"order_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// 在庫履歴（新しい順）
func (u *InventoryUsecase) ListMovements(ctx context.Context, ownerID int64, variantID int64, limit int) ([]MovementOutput, error) {
	if ownerID <= 0 {
		return []MovementOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if variantID <= 0 {
		return []MovementOutput{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if limit < 0 || limit > 200 {
		return []MovementOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []MovementOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Variants().FindByID(ctx, ownerID, variantID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rows, err := r.Inventory().ListMovements(ctx, repo.MovementFilter{
			OwnerID:   ownerID,
			VariantID: variantID,
			Limit:     limit,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]MovementOutput, 0, len(rows))
		for _, m := range rows {
			outs = append(outs, MovementOutput{
				ID:        m.ID,
				OrderID:   m.OrderID,
				Type:      string(m.Type),
				Quantity:  m.Quantity,
				Note:      m.Note,
				CreatedAt: m.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return []MovementOutput{}, err
	}
	return outs, nil
}
