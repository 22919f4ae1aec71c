package usecase

import (
	"context"
	"time"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// バッチの多重起動を防ぐロック。取れなかったら acquired=false
type JobLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}

// 在庫引当が確定した注文の通知先
type StockEventPublisher interface {
	PublishStockDeducted(ctx context.Context, ev StockDeductedEvent) error
}

type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishStockDeducted(ctx context.Context, ev StockDeductedEvent) error {
	return nil
}
