package model

import "time"

// 構成の保存、在庫調整、ステータス履歴の追加など。
type AuditAction string

const (
	//在庫を手動で調整した操作。
	AuditActionAdjustStock AuditAction = "ADJUST_STOCK"
	//セット構成を保存した操作。
	AuditActionReplaceComposition AuditAction = "REPLACE_COMPOSITION"
	//注文ステータス履歴を追加した操作。
	AuditActionRecordOrderStatus AuditAction = "RECORD_ORDER_STATUS"
)

// 何に対する操作か
type AuditResourceType string

const (
	//バリアントに対する操作。
	AuditResourceVariant AuditResourceType = "variant"

	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"

	//セット構成に対する操作（ResourceIDは0、SKUはJSON側に残す）。
	AuditResourceComposition AuditResourceType = "composition"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
