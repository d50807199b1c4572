package dto

import (
	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/models"
)

type CreateCampusRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type RegisterStudentRequest struct {
	UserID         uuid.UUID `json:"user"`
	StudentNumber  string    `json:"student_id"`
	EnrollmentDate string    `json:"enrollment_date"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusChangeRequest targets enrolled students by id.
type BulkStatusChangeRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids"`
	Status     string      `json:"status"`
}

type BulkRegisterStudentsRequest struct {
	Students []RegisterStudentRequest `json:"students"`
}

// EnrollmentError is one rejected bulk-enroll entry, in request order.
type EnrollmentError struct {
	StudentNumber string `json:"student_id"`
	Reason        string `json:"reason"`
}

type BulkEnrollResponse struct {
	Created []models.CampusStudent `json:"created"`
	Errors  []EnrollmentError      `json:"errors"`
}

type CampusStatisticsResponse struct {
	TotalStudents      int64            `json:"total_students"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
	NewStudentsLast30  int64            `json:"new_students_last_30_days"`
}
