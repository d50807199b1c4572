package dto

// CreateUserRequest is the single-account admin create. Defaults mirror the
// dashboard form: role student, welcome email on, activate immediately.
type CreateUserRequest struct {
	Email               string  `json:"email"`
	Password            string  `json:"password"`
	Name                string  `json:"name"`
	Role                string  `json:"role"`
	Phone               string  `json:"phone"`
	Company             string  `json:"company"`
	CompanyID           *string `json:"company_id"`
	SendWelcomeEmail    *bool   `json:"sendWelcomeEmail"`
	ActivateImmediately *bool   `json:"activateImmediately"`
}

type UserStatsResponse struct {
	Total     int64 `json:"total"`
	Students  int64 `json:"students"`
	Employers int64 `json:"employers"`
	Admins    int64 `json:"admins"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	NewToday  int64 `json:"new_today"`
}

type DashboardStatsResponse struct {
	TotalUsers           int64 `json:"total_users"`
	NewUsersToday        int64 `json:"new_users_today"`
	TotalJobs            int64 `json:"total_jobs"`
	NewJobsToday         int64 `json:"new_jobs_today"`
	TotalApplications    int64 `json:"total_applications"`
	NewApplicationsToday int64 `json:"new_applications_today"`
	TotalCompanies       int64 `json:"total_companies"`
	PendingVerifications int64 `json:"pending_verifications"`
	ActiveJobs           int64 `json:"active_jobs"`
	TotalStudents        int64 `json:"total_students"`
	TotalEmployers       int64 `json:"total_employers"`
}

type ToggleActiveResponse struct {
	Status   string `json:"status"`
	IsActive bool   `json:"is_active"`
}

type UpdateSettingsRequest struct {
	PlatformName      *string `json:"platform_name"`
	SupportEmail      *string `json:"support_email"`
	MaintenanceMode   *bool   `json:"maintenance_mode"`
	AllowRegistration *bool   `json:"allow_registration"`
}
