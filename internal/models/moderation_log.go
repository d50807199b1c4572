package models

import (
	"time"

	"github.com/google/uuid"
)

// Moderation/audit actions recorded by admin operations.
const (
	ActionCreate         = "create"
	ActionSuspend        = "suspend"
	ActionRestore        = "restore"
	ActionApprove        = "approve"
	ActionReject         = "reject"
	ActionBulkUserUpload = "bulk_user_upload"
	ActionBulkStatus     = "bulk_status_change"
)

// ModerationLog is one audit entry: who did what to which record.
type ModerationLog struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdminID     uuid.UUID `gorm:"type:uuid;not null;index" json:"admin"`
	Action      string    `gorm:"size:50;not null;index" json:"action"`
	SubjectType string    `gorm:"size:50" json:"subject_type"`
	SubjectID   string    `gorm:"size:64;index" json:"subject_id"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	Admin       User      `gorm:"foreignKey:AdminID" json:"-"`
}
