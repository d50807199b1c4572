package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/authz"
	"github.com/studenthunter/backend/internal/bulk"
	"github.com/studenthunter/backend/internal/config"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"github.com/studenthunter/backend/internal/services"
	"gorm.io/gorm"
)

type AdminHandler struct {
	adminService *services.AdminService
	bulkService  *bulk.Service
	cfg          *config.Config
	db           *gorm.DB
}

func NewAdminHandler(adminService *services.AdminService, bulkService *bulk.Service, cfg *config.Config, db *gorm.DB) *AdminHandler {
	return &AdminHandler{adminService: adminService, bulkService: bulkService, cfg: cfg, db: db}
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	actorID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.adminService.CreateUser(actorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewStatusError(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   user,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	role := c.Query("role")
	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		isActive = &active
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, total, err := h.adminService.ListUsers(role, isActive, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{"count": total, "results": users})
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	user, err := h.adminService.GetUser(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}
	return c.JSON(user)
}

func (h *AdminHandler) ToggleUserActive(c *fiber.Ctx) error {
	actorID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	isActive, err := h.adminService.ToggleUserActive(actorID, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user",
		})
	}

	return c.JSON(dto.ToggleActiveResponse{Status: "success", IsActive: isActive})
}

// BulkUploadUsers accepts a multipart CSV/XLSX upload and provisions one
// account per row. Whole-file failures use the status/message envelope;
// per-row outcomes come back in the batch report.
func (h *AdminHandler) BulkUploadUsers(c *fiber.Ctx) error {
	requester, err := h.resolveRequester(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError("No file provided"))
	}
	if fileHeader.Size > h.cfg.BulkMaxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.NewStatusError("Uploaded file is too large"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError("Error processing file: " + err.Error()))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError("Error processing file: " + err.Error()))
	}

	report, err := h.bulkService.Run(c.Context(), requester, fileHeader.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError(err.Error()))
	}

	return c.JSON(report)
}

// resolveRequester maps the authenticated caller to a provisioning category.
// Staff accounts provision without restriction; everyone else is scoped by
// their platform role.
func (h *AdminHandler) resolveRequester(c *fiber.Ctx) (bulk.Requester, error) {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return bulk.Requester{}, err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return bulk.Requester{}, err
	}

	category := user.Role
	if user.IsStaff || user.Role == models.RoleAdmin {
		category = models.RoleAdmin
	}
	return bulk.Requester{ID: userID, Category: category}, nil
}

func (h *AdminHandler) UserStats(c *fiber.Ctx) error {
	stats, err := h.adminService.UserStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.DashboardStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ToggleJobActive(c *fiber.Ctx) error {
	actorID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	isActive, err := h.adminService.ToggleJobActive(actorID, jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update job",
		})
	}
	return c.JSON(dto.ToggleActiveResponse{Status: "success", IsActive: isActive})
}

func (h *AdminHandler) ToggleJobFeatured(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	featured, err := h.adminService.ToggleJobFeatured(jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update job",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "is_featured": featured})
}

func (h *AdminHandler) ToggleCompanyVerified(c *fiber.Ctx) error {
	actorID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid company id",
		})
	}

	verified, err := h.adminService.ToggleCompanyVerified(actorID, companyID)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Company not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update company",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "is_verified": verified})
}

func (h *AdminHandler) ToggleCompanyFeatured(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid company id",
		})
	}

	featured, err := h.adminService.ToggleCompanyFeatured(companyID)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Company not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update company",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "is_featured": featured})
}

func (h *AdminHandler) ListModerationLogs(c *fiber.Ctx) error {
	action := c.Query("action")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	logs, total, err := h.adminService.ListModerationLogs(action, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list moderation logs",
		})
	}
	return c.JSON(fiber.Map{"count": total, "results": logs})
}

func (h *AdminHandler) ListNotifications(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	notifications, total, err := h.adminService.ListNotifications(unreadOnly, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list notifications",
		})
	}
	return c.JSON(fiber.Map{"count": total, "results": notifications})
}

func (h *AdminHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification id",
		})
	}
	if err := h.adminService.MarkNotificationRead(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update notification",
		})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *AdminHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := h.adminService.MarkAllNotificationsRead(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update notifications",
		})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.adminService.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load settings",
		})
	}
	return c.JSON(settings)
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	settings, err := h.adminService.UpdateSettings(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update settings",
		})
	}
	return c.JSON(settings)
}
