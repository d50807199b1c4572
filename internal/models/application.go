package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationPending   = "pending"
	ApplicationReviewing = "reviewing"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Status    string    `gorm:"size:20;default:'pending';index" json:"status"`
	CoverNote string    `gorm:"type:text" json:"cover_note,omitempty"`
	ResumeURL string    `gorm:"size:512" json:"resume_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
	Student   User      `gorm:"foreignKey:StudentID" json:"-"`
}
