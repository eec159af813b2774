package entities

import "time"

type AuditEventType string

const (
	AuditEventImport AuditEventType = "import"
	AuditEventUpload AuditEventType = "upload"
	AuditEventDelete AuditEventType = "delete"
	AuditEventAuth   AuditEventType = "auth"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	TeamID      uint           `gorm:"index" json:"team_id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "file_import", "contact_delete"
	Description string         `gorm:"size:500" json:"description"` // human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "file", "contact", "media_list"
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
