package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/studenthunter/backend/internal/config"
	"github.com/studenthunter/backend/internal/handlers"
	"github.com/studenthunter/backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	campusHandler *handlers.CampusHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Apply JWT per-route so the middleware never touches public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Bulk provisioning admits staff and campus accounts; the pipeline
	// enforces per-row role scope for campus callers. Registered before the
	// admin group so campus accounts are not caught by AdminRequired.
	api.Post("/admin/users/bulk",
		middleware.JWTProtected(cfg),
		middleware.BulkProvisionPermitted(db, cfg),
		adminHandler.BulkUploadUsers,
	)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/stats", adminHandler.UserStats)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Post("/users/:id/toggle-active", adminHandler.ToggleUserActive)

	admin.Get("/dashboard/stats", adminHandler.DashboardStats)

	admin.Post("/jobs/:id/toggle-active", adminHandler.ToggleJobActive)
	admin.Post("/jobs/:id/toggle-featured", adminHandler.ToggleJobFeatured)
	admin.Post("/companies/:id/toggle-verified", adminHandler.ToggleCompanyVerified)
	admin.Post("/companies/:id/toggle-featured", adminHandler.ToggleCompanyFeatured)

	admin.Get("/moderation-logs", adminHandler.ListModerationLogs)

	admin.Get("/notifications", adminHandler.ListNotifications)
	admin.Post("/notifications/:id/read", adminHandler.MarkNotificationRead)
	admin.Post("/notifications/read-all", adminHandler.MarkAllNotificationsRead)

	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)

	admin.Post("/campuses", campusHandler.CreateCampus)
	admin.Get("/campuses", campusHandler.ListCampuses)
	admin.Get("/campuses/:id", campusHandler.GetCampus)

	// Campus student management (protected; ownership enforced in handler)
	students := api.Group("/campus-students", middleware.JWTProtected(cfg))
	students.Post("/", campusHandler.RegisterStudent)
	students.Post("/bulk-register", campusHandler.BulkRegisterStudents)
	students.Get("/", campusHandler.ListStudents)
	students.Get("/statistics", campusHandler.Statistics)
	students.Post("/bulk-status-change", campusHandler.BulkChangeStatus)
	students.Post("/:id/change-status", campusHandler.ChangeStatus)
}
