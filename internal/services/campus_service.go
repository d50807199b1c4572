package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCampusNotFound    = errors.New("campus not found")
	ErrNotCampusAdmin    = errors.New("only campus admin can manage students")
	ErrStudentNotFound   = errors.New("student not found")
	ErrStudentNumberUsed = errors.New("this student ID already exists in this campus")
	ErrInvalidStatus     = errors.New("invalid status")
)

type CampusService struct {
	db *gorm.DB
}

func NewCampusService(db *gorm.DB) *CampusService {
	return &CampusService{db: db}
}

func (s *CampusService) Create(adminID uuid.UUID, req *dto.CreateCampusRequest) (*models.Campus, error) {
	if req.Name == "" {
		return nil, errors.New("campus name is required")
	}

	campus := models.Campus{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		AdminID:      &adminID,
		IsActive:     true,
	}
	if err := s.db.Create(&campus).Error; err != nil {
		return nil, fmt.Errorf("failed to create campus: %w", err)
	}
	return &campus, nil
}

func (s *CampusService) Get(id uuid.UUID) (*models.Campus, error) {
	var campus models.Campus
	if err := s.db.First(&campus, "id = ?", id).Error; err != nil {
		return nil, ErrCampusNotFound
	}
	return &campus, nil
}

func (s *CampusService) List(limit, offset int) ([]models.Campus, int64, error) {
	var campuses []models.Campus
	var total int64

	s.db.Model(&models.Campus{}).Count(&total)
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&campuses).Error; err != nil {
		return nil, 0, err
	}
	return campuses, total, nil
}

// AdministeredBy returns the campus the user administers, or
// ErrNotCampusAdmin when there is none.
func (s *CampusService) AdministeredBy(userID uuid.UUID) (*models.Campus, error) {
	var campus models.Campus
	if err := s.db.Where("admin_id = ?", userID).First(&campus).Error; err != nil {
		return nil, ErrNotCampusAdmin
	}
	return &campus, nil
}

// RegisterStudent enrolls an existing account into a campus. Student numbers
// are unique within a campus; the collision is rejected before the write.
func (s *CampusService) RegisterStudent(campusID uuid.UUID, req *dto.RegisterStudentRequest) (*models.CampusStudent, error) {
	if req.StudentNumber == "" {
		return nil, errors.New("student_id is required")
	}

	var count int64
	s.db.Model(&models.CampusStudent{}).
		Where("campus_id = ? AND student_number = ?", campusID, req.StudentNumber).
		Count(&count)
	if count > 0 {
		return nil, ErrStudentNumberUsed
	}

	enrollmentDate := time.Now()
	if req.EnrollmentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EnrollmentDate)
		if err != nil {
			return nil, errors.New("enrollment_date must be YYYY-MM-DD")
		}
		enrollmentDate = parsed
	}

	student := models.CampusStudent{
		ID:             uuid.New(),
		UserID:         req.UserID,
		CampusID:       campusID,
		StudentNumber:  req.StudentNumber,
		EnrollmentDate: enrollmentDate,
		Status:         models.StudentStatusActive,
	}
	if err := s.db.Create(&student).Error; err != nil {
		return nil, fmt.Errorf("failed to register student: %w", err)
	}
	return &student, nil
}

// BulkRegisterStudents enrolls many students in one call. Entries are
// validated and written independently; one bad entry never blocks the rest,
// and outcomes keep request order.
func (s *CampusService) BulkRegisterStudents(campusID uuid.UUID, students []dto.RegisterStudentRequest) *dto.BulkEnrollResponse {
	resp := &dto.BulkEnrollResponse{
		Created: []models.CampusStudent{},
		Errors:  []dto.EnrollmentError{},
	}
	for i := range students {
		student, err := s.RegisterStudent(campusID, &students[i])
		if err != nil {
			resp.Errors = append(resp.Errors, dto.EnrollmentError{
				StudentNumber: students[i].StudentNumber,
				Reason:        err.Error(),
			})
			continue
		}
		resp.Created = append(resp.Created, *student)
	}
	return resp
}

func (s *CampusService) ListStudents(campusID uuid.UUID, status string, limit, offset int) ([]models.CampusStudent, int64, error) {
	var students []models.CampusStudent
	var total int64

	query := s.db.Model(&models.CampusStudent{}).Where("campus_id = ?", campusID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("enrollment_date DESC").Limit(limit).Offset(offset).Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// ChangeStatus updates a single enrollment, enforcing campus ownership.
func (s *CampusService) ChangeStatus(campusID, studentID uuid.UUID, status string) (*models.CampusStudent, error) {
	if !models.ValidStudentStatus(status) {
		return nil, ErrInvalidStatus
	}

	var student models.CampusStudent
	if err := s.db.Where("id = ? AND campus_id = ?", studentID, campusID).First(&student).Error; err != nil {
		return nil, ErrStudentNotFound
	}

	student.Status = status
	if err := s.db.Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *CampusService) Statistics(campusID uuid.UUID) (*dto.CampusStatisticsResponse, error) {
	stats := &dto.CampusStatisticsResponse{
		StatusDistribution: make(map[string]int64),
	}

	s.db.Model(&models.CampusStudent{}).Where("campus_id = ?", campusID).Count(&stats.TotalStudents)

	for _, status := range models.StudentStatuses {
		var count int64
		s.db.Model(&models.CampusStudent{}).
			Where("campus_id = ? AND status = ?", campusID, status).
			Count(&count)
		stats.StatusDistribution[status] = count
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	s.db.Model(&models.CampusStudent{}).
		Where("campus_id = ? AND created_at >= ?", campusID, thirtyDaysAgo).
		Count(&stats.NewStudentsLast30)

	return stats, nil
}
