package repository

import (
	"context"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return storageError("create audit log", err)
	}
	return nil
}

func (r *auditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{}).Scopes(auditLogScope(f))

	limit := f.Limit
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}
	offset := max(f.Offset, 0)

	var logs []model.AuditLog
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, storageError("list audit logs", err)
	}
	return logs, nil
}

// 指定された項目だけ WHERE に積む
func auditLogScope(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ActorUserID > 0 {
			db = db.Where("actor_user_id = ?", f.ActorUserID)
		}
		if f.Action != "" {
			db = db.Where("action = ?", f.Action)
		}
		if f.ResourceType != "" {
			db = db.Where("resource_type = ?", f.ResourceType)
		}
		if f.ResourceID != nil {
			db = db.Where("resource_id = ?", *f.ResourceID)
		}
		if f.From != nil {
			db = db.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			db = db.Where("created_at <= ?", *f.To)
		}
		return db
	}
}
