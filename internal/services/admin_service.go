package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailPassword        = errors.New("email and password are required")
	ErrInvalidRole          = errors.New("invalid role")
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// CreateUser is the single-account admin create. The bulk path in
// internal/bulk shares the same activation default.
func (s *AdminService) CreateUser(actorID uuid.UUID, req *dto.CreateUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrEmailPassword
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	active := true
	if req.ActivateImmediately != nil {
		active = *req.ActivateImmediately
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Role:     role,
		Phone:    req.Phone,
		IsActive: active,
	}

	if role == models.RoleEmployer {
		user.Company = req.Company
		if req.CompanyID != nil {
			if companyID, err := uuid.Parse(*req.CompanyID); err == nil {
				user.CompanyID = &companyID
				if user.Company == "" {
					var company models.Company
					if err := s.db.First(&company, "id = ?", companyID).Error; err == nil {
						user.Company = company.Name
					}
				}
			}
		}
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recordAudit(actorID, models.ActionCreate, "user", user.ID.String(),
		fmt.Sprintf("Created new %s account: %s", role, req.Email))

	return &user, nil
}

func (s *AdminService) ListUsers(role string, isActive *bool, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *AdminService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ToggleUserActive flips the activation flag and records a suspend/restore
// audit entry.
func (s *AdminService) ToggleUserActive(actorID, userID uuid.UUID) (bool, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return false, ErrUserNotFound
	}

	user.IsActive = !user.IsActive
	if err := s.db.Save(&user).Error; err != nil {
		return false, err
	}

	action := models.ActionSuspend
	verb := "Deactivated"
	if user.IsActive {
		action = models.ActionRestore
		verb = "Activated"
	}
	s.recordAudit(actorID, action, "user", user.ID.String(),
		fmt.Sprintf("%s user account: %s", verb, user.Email))

	return user.IsActive, nil
}

func (s *AdminService) UserStats() (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}
	users := s.db.Model(&models.User{})

	users.Count(&stats.Total)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.Students)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleEmployer).Count(&stats.Employers)
	s.db.Model(&models.User{}).Where("is_staff = true").Count(&stats.Admins)
	s.db.Model(&models.User{}).Where("is_active = true").Count(&stats.Active)
	s.db.Model(&models.User{}).Where("is_active = false").Count(&stats.Inactive)

	today := time.Now().Truncate(24 * time.Hour)
	s.db.Model(&models.User{}).Where("created_at >= ?", today).Count(&stats.NewToday)

	return stats, nil
}

func (s *AdminService) DashboardStats() (*dto.DashboardStatsResponse, error) {
	stats := &dto.DashboardStatsResponse{}
	today := time.Now().Truncate(24 * time.Hour)

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", today).Count(&stats.NewUsersToday)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.TotalStudents)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleEmployer).Count(&stats.TotalEmployers)
	s.db.Model(&models.Job{}).Count(&stats.TotalJobs)
	s.db.Model(&models.Job{}).Where("posted_date >= ?", today).Count(&stats.NewJobsToday)
	s.db.Model(&models.Job{}).Where("is_active = true").Count(&stats.ActiveJobs)
	s.db.Model(&models.Application{}).Count(&stats.TotalApplications)
	s.db.Model(&models.Application{}).Where("created_at >= ?", today).Count(&stats.NewApplicationsToday)
	s.db.Model(&models.Company{}).Count(&stats.TotalCompanies)
	s.db.Model(&models.Company{}).Where("verified = false").Count(&stats.PendingVerifications)

	return stats, nil
}

func (s *AdminService) ToggleJobActive(actorID, jobID uuid.UUID) (bool, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return false, ErrJobNotFound
	}

	job.IsActive = !job.IsActive
	if err := s.db.Save(&job).Error; err != nil {
		return false, err
	}

	action := models.ActionReject
	verb := "Deactivated"
	if job.IsActive {
		action = models.ActionApprove
		verb = "Activated"
	}
	s.recordAudit(actorID, action, "job", job.ID.String(),
		fmt.Sprintf("%s job: %s", verb, job.Title))

	return job.IsActive, nil
}

func (s *AdminService) ToggleJobFeatured(jobID uuid.UUID) (bool, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return false, ErrJobNotFound
	}
	job.Featured = !job.Featured
	if err := s.db.Save(&job).Error; err != nil {
		return false, err
	}
	return job.Featured, nil
}

func (s *AdminService) ToggleCompanyVerified(actorID, companyID uuid.UUID) (bool, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", companyID).Error; err != nil {
		return false, ErrCompanyNotFound
	}

	company.Verified = !company.Verified
	if err := s.db.Save(&company).Error; err != nil {
		return false, err
	}

	action := models.ActionReject
	verb := "Unverified"
	if company.Verified {
		action = models.ActionApprove
		verb = "Verified"
	}
	s.recordAudit(actorID, action, "company", company.ID.String(),
		fmt.Sprintf("%s company: %s", verb, company.Name))

	return company.Verified, nil
}

func (s *AdminService) ToggleCompanyFeatured(companyID uuid.UUID) (bool, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", companyID).Error; err != nil {
		return false, ErrCompanyNotFound
	}
	company.Featured = !company.Featured
	if err := s.db.Save(&company).Error; err != nil {
		return false, err
	}
	return company.Featured, nil
}

func (s *AdminService) ListModerationLogs(action string, limit, offset int) ([]models.ModerationLog, int64, error) {
	var logs []models.ModerationLog
	var total int64

	query := s.db.Model(&models.ModerationLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	query.Count(&total)

	if err := query.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *AdminService) ListNotifications(unreadOnly bool, limit, offset int) ([]models.AdminNotification, int64, error) {
	var notifications []models.AdminNotification
	var total int64

	query := s.db.Model(&models.AdminNotification{})
	if unreadOnly {
		query = query.Where("is_read = false")
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *AdminService) MarkNotificationRead(id uuid.UUID) error {
	result := s.db.Model(&models.AdminNotification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *AdminService) MarkAllNotificationsRead() error {
	return s.db.Model(&models.AdminNotification{}).Where("is_read = false").Update("is_read", true).Error
}

func (s *AdminService) GetSettings() (*models.SystemSettings, error) {
	var settings models.SystemSettings
	if err := s.db.FirstOrCreate(&settings, models.SystemSettings{ID: 1}).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *AdminService) UpdateSettings(req *dto.UpdateSettingsRequest) (*models.SystemSettings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if req.PlatformName != nil {
		settings.PlatformName = *req.PlatformName
	}
	if req.SupportEmail != nil {
		settings.SupportEmail = *req.SupportEmail
	}
	if req.MaintenanceMode != nil {
		settings.MaintenanceMode = *req.MaintenanceMode
	}
	if req.AllowRegistration != nil {
		settings.AllowRegistration = *req.AllowRegistration
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// recordAudit writes one moderation-log entry. Audit trouble is logged,
// never surfaced to the caller.
func (s *AdminService) recordAudit(actorID uuid.UUID, action, subjectType, subjectID, notes string) {
	entry := models.ModerationLog{
		ID:          uuid.New(),
		AdminID:     actorID,
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Notes:       notes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record moderation log",
			"action", action, "subject_id", subjectID, "error", err)
	}
}
