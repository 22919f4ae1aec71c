package repository

import (
	"context"

	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	histories    repo.OrderStatusHistoryRepository
	variants     repo.VariantRepository
	inventory    repo.InventoryRepository
	compositions repo.CompositionRepository
	auditLogs    repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                       { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository               { return r.orderItems }
func (r *txReposGorm) StatusHistories() repo.OrderStatusHistoryRepository { return r.histories }
func (r *txReposGorm) Variants() repo.VariantRepository                   { return r.variants }
func (r *txReposGorm) Inventory() repo.InventoryRepository                { return r.inventory }
func (r *txReposGorm) Compositions() repo.CompositionRepository           { return r.compositions }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository                 { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			histories:    NewOrderStatusHistoryGormRepository(tx),
			variants:     NewVariantGormRepository(tx),
			inventory:    NewInventoryGormRepository(tx),
			compositions: NewCompositionGormRepository(tx),
			auditLogs:    NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
