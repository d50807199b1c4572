package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment statuses for campus students.
const (
	StudentStatusActive    = "active"
	StudentStatusGraduated = "graduated"
	StudentStatusSuspended = "suspended"
	StudentStatusWithdrawn = "withdrawn"
)

var StudentStatuses = []string{
	StudentStatusActive,
	StudentStatusGraduated,
	StudentStatusSuspended,
	StudentStatusWithdrawn,
}

func ValidStudentStatus(status string) bool {
	for _, s := range StudentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Campus struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Address      string     `gorm:"type:text" json:"address"`
	ContactEmail string     `gorm:"size:255" json:"contact_email"`
	ContactPhone string     `gorm:"size:30" json:"contact_phone"`
	AdminID      *uuid.UUID `gorm:"type:uuid;index" json:"admin"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CampusStudent links a platform account to a campus enrollment record.
// StudentNumber is unique within a campus.
type CampusStudent struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	CampusID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_campus_student_number" json:"campus"`
	StudentNumber  string    `gorm:"size:50;not null;uniqueIndex:idx_campus_student_number" json:"student_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         string    `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	Campus         Campus    `gorm:"foreignKey:CampusID" json:"-"`
}
