package usecase

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// 監査ログ一覧の検索条件。空文字/nil は「指定なし」
type AuditLogQuery struct {
	Action       string
	ResourceType string
	ResourceID   *int64
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

var (
	auditActions = map[model.AuditAction]struct{}{
		model.AuditActionAdjustStock:        {},
		model.AuditActionReplaceComposition: {},
		model.AuditActionRecordOrderStatus:  {},
	}
	auditResourceTypes = map[model.AuditResourceType]struct{}{
		model.AuditResourceVariant:     {},
		model.AuditResourceOrder:       {},
		model.AuditResourceComposition: {},
	}
)

// 自分の操作ログだけ返す
func (u *AuditUsecase) ListMine(ctx context.Context, actorUserID int64, in AuditLogQuery) ([]model.AuditLog, error) {
	if actorUserID <= 0 {
		return []model.AuditLog{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	f, err := toAuditLogFilter(actorUserID, in)
	if err != nil {
		return []model.AuditLog{}, err
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}

func toAuditLogFilter(actorUserID int64, in AuditLogQuery) (repo.AuditLogFilter, error) {
	if in.Limit < 0 || in.Limit > 200 {
		return repo.AuditLogFilter{}, NewValidationError("limit", "must be between 0 and 200")
	}
	if in.Offset < 0 {
		return repo.AuditLogFilter{}, NewValidationError("offset", "must be >= 0")
	}

	action := model.AuditAction(in.Action)
	if action != "" {
		if _, ok := auditActions[action]; !ok {
			return repo.AuditLogFilter{}, NewValidationError("action", "unknown action")
		}
	}
	resourceType := model.AuditResourceType(in.ResourceType)
	if resourceType != "" {
		if _, ok := auditResourceTypes[resourceType]; !ok {
			return repo.AuditLogFilter{}, NewValidationError("resource_type", "unknown resource type")
		}
	}
	if in.ResourceID != nil && *in.ResourceID < 0 {
		return repo.AuditLogFilter{}, NewValidationError("resource_id", "must be >= 0")
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return repo.AuditLogFilter{}, NewValidationError("from", "must not be after to")
	}

	return repo.AuditLogFilter{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   in.ResourceID,
		From:         in.From,
		To:           in.To,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}, nil
}
