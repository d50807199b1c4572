package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform roles. Admin accounts are created by operators, never through
// public registration.
const (
	RoleStudent  = "student"
	RoleEmployer = "employer"
	RoleCampus   = "campus"
	RoleAdmin    = "admin"
)

// Roles is the fixed role enumeration in display order.
var Roles = []string{RoleStudent, RoleEmployer, RoleCampus, RoleAdmin}

// ValidRole reports whether role belongs to the fixed enumeration.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the platform account. Email is the natural key.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:255" json:"name"`
	Role      string         `gorm:"size:20;not null;default:'student';index" json:"role"`
	Phone     string         `gorm:"size:30" json:"phone,omitempty"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	IsStaff   bool           `gorm:"default:false" json:"is_staff"`
	Company   string         `gorm:"size:255" json:"company,omitempty"`
	CompanyID *uuid.UUID     `gorm:"type:uuid" json:"company_id,omitempty"`
	CreatedAt time.Time      `json:"date_joined"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
