package usecase_test

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	histories    repo.OrderStatusHistoryRepository
	variants     repo.VariantRepository
	inventory    repo.InventoryRepository
	compositions repo.CompositionRepository
	auditLogs    repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                       { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository               { return r.orderItems }
func (r *TxReposMock) StatusHistories() repo.OrderStatusHistoryRepository { return r.histories }
func (r *TxReposMock) Variants() repo.VariantRepository                   { return r.variants }
func (r *TxReposMock) Inventory() repo.InventoryRepository                { return r.inventory }
func (r *TxReposMock) Compositions() repo.CompositionRepository           { return r.compositions }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository                 { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListPendingDeduction(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	args := m.Called(ctx, from, to)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) MarkStockDeducted(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type HistoryRepoMock struct{ mock.Mock }

func (m *HistoryRepoMock) Create(ctx context.Context, h model.OrderStatusHistory) (int64, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *HistoryRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusHistory, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]model.OrderStatusHistory)
	return rows, args.Error(1)
}

type VariantRepoMock struct{ mock.Mock }

func (m *VariantRepoMock) FindByID(ctx context.Context, ownerID int64, id int64) (model.ProductVariant, error) {
	args := m.Called(ctx, ownerID, id)
	v, _ := args.Get(0).(model.ProductVariant)
	return v, args.Error(1)
}

func (m *VariantRepoMock) FindBySKU(ctx context.Context, ownerID int64, sku string) (model.ProductVariant, error) {
	args := m.Called(ctx, ownerID, sku)
	v, _ := args.Get(0).(model.ProductVariant)
	return v, args.Error(1)
}

func (m *VariantRepoMock) SearchStandalone(ctx context.Context, q repo.CandidateQuery) ([]repo.VariantCandidate, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).([]repo.VariantCandidate)
	return out, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) Deduct(ctx context.Context, d repo.StockDeduction) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) Adjust(ctx context.Context, a repo.StockAdjustment) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) ListMovements(ctx context.Context, f repo.MovementFilter) ([]model.StockMovement, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]model.StockMovement)
	return rows, args.Error(1)
}

type CompositionRepoMock struct{ mock.Mock }

func (m *CompositionRepoMock) ListByBundle(ctx context.Context, ownerID int64, bundleSKU string) ([]model.SKUComposition, error) {
	args := m.Called(ctx, ownerID, bundleSKU)
	rows, _ := args.Get(0).([]model.SKUComposition)
	return rows, args.Error(1)
}

func (m *CompositionRepoMock) DeleteByBundle(ctx context.Context, ownerID int64, bundleSKU string) error {
	args := m.Called(ctx, ownerID, bundleSKU)
	return args.Error(0)
}

func (m *CompositionRepoMock) CreateBulk(ctx context.Context, rows []model.SKUComposition) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// ports
// =====================

type LockerMock struct{ mock.Mock }

func (m *LockerMock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, key, ttl)
	release := func(context.Context) error {
		m.MethodCalled("release")
		return nil
	}
	return release, args.Bool(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishStockDeducted(ctx context.Context, ev usecase.StockDeductedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }
