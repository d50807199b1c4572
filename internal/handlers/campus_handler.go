package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/authz"
	"github.com/studenthunter/backend/internal/bulk"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"github.com/studenthunter/backend/internal/services"
)

type CampusHandler struct {
	campusService *services.CampusService
	statusService *bulk.StatusService
}

func NewCampusHandler(campusService *services.CampusService, statusService *bulk.StatusService) *CampusHandler {
	return &CampusHandler{campusService: campusService, statusService: statusService}
}

func (h *CampusHandler) CreateCampus(c *fiber.Ctx) error {
	adminID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateCampusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	campus, err := h.campusService.Create(adminID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(campus)
}

func (h *CampusHandler) GetCampus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid campus id",
		})
	}

	campus, err := h.campusService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Campus not found",
		})
	}
	return c.JSON(campus)
}

func (h *CampusHandler) ListCampuses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	campuses, total, err := h.campusService.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list campuses",
		})
	}
	return c.JSON(fiber.Map{"count": total, "results": campuses})
}

func (h *CampusHandler) RegisterStudent(c *fiber.Ctx) error {
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	var req dto.RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	student, err := h.campusService.RegisterStudent(campus.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrStudentNumberUsed) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

// BulkRegisterStudents enrolls many students in one request. Entries are
// processed independently; the response carries the created records and the
// per-entry failures in request order.
func (h *CampusHandler) BulkRegisterStudents(c *fiber.Ctx) error {
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	var req dto.BulkRegisterStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp := h.campusService.BulkRegisterStudents(campus.ID, req.Students)
	code := fiber.StatusCreated
	if len(resp.Created) == 0 {
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(resp)
}

func (h *CampusHandler) ListStudents(c *fiber.Ctx) error {
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	status := c.Query("status")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	students, total, err := h.campusService.ListStudents(campus.ID, status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list students",
		})
	}
	return c.JSON(fiber.Map{"count": total, "results": students})
}

func (h *CampusHandler) ChangeStatus(c *fiber.Ctx) error {
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid student id",
		})
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	student, err := h.campusService.ChangeStatus(campus.ID, studentID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Student not found",
		})
	}
	return c.JSON(student)
}

// BulkChangeStatus applies one status to many enrollments. One target's
// failure never blocks the rest; the report carries per-target outcomes
// in request order.
func (h *CampusHandler) BulkChangeStatus(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	var req dto.BulkStatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	requester := bulk.Requester{ID: userID, Category: authz.GetRole(c)}
	report, err := h.statusService.Run(c.Context(), requester, campus.ID, req.StudentIDs, req.Status)
	if err != nil {
		if errors.Is(err, bulk.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewStatusError(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewStatusError("Failed to update students"))
	}
	return c.JSON(report)
}

func (h *CampusHandler) Statistics(c *fiber.Ctx) error {
	campus, err := h.callerCampus(c)
	if err != nil {
		return campusError(c, err)
	}

	stats, err := h.campusService.Statistics(campus.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute statistics",
		})
	}
	return c.JSON(stats)
}

// callerCampus resolves which campus the caller may act on. Staff may name
// any campus with the campus_id query parameter; campus accounts are bound
// to the campus they administer.
func (h *CampusHandler) callerCampus(c *fiber.Ctx) (*models.Campus, error) {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return nil, err
	}

	if authz.GetRole(c) == models.RoleAdmin {
		if raw := c.Query("campus_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, services.ErrCampusNotFound
			}
			return h.campusService.Get(id)
		}
	}
	return h.campusService.AdministeredBy(userID)
}

func campusError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotCampusAdmin):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrCampusNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
}
