package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "open"
	JobStatusFilled = "filled"
	JobStatusClosed = "closed"
)

type Job struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title            string         `gorm:"size:255;not null" json:"title"`
	Company          string         `gorm:"size:255" json:"company"`
	Description      string         `gorm:"type:text" json:"description"`
	Location         string         `gorm:"size:255" json:"location"`
	Type             string         `gorm:"size:50;index" json:"type"`
	Industry         string         `gorm:"size:100;index" json:"industry"`
	Status           string         `gorm:"size:20;default:'open';index" json:"status"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	Featured         bool           `gorm:"default:false" json:"featured"`
	ViewCount        int            `gorm:"default:0" json:"view_count"`
	ApplicationCount int            `gorm:"default:0" json:"application_count"`
	PostedDate       time.Time      `gorm:"index" json:"posted_date"`
	CreatedByID      *uuid.UUID     `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
