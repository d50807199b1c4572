package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemSettings is a singleton row (ID 1) of operator-editable platform
// settings. Extra holds ad-hoc keys the dashboard adds without a migration.
type SystemSettings struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	PlatformName      string         `gorm:"size:255;default:'StudentHunter'" json:"platform_name"`
	SupportEmail      string         `gorm:"size:255" json:"support_email"`
	MaintenanceMode   bool           `gorm:"default:false" json:"maintenance_mode"`
	AllowRegistration bool           `gorm:"default:true" json:"allow_registration"`
	Extra             datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
