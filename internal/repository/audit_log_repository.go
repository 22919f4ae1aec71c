package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
)

// 監査ログ一覧の絞り込み。ゼロ値の項目は条件にしない
type AuditLogFilter struct {
	ActorUserID  int64
	Action       model.AuditAction
	ResourceType model.AuditResourceType
	ResourceID   *int64
	// [From, To] の両端を含む
	From  *time.Time
	To    *time.Time
	Limit int
	// 新しい順に並べたときの読み飛ばし件数
	Offset int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
