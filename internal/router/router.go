package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-hub/academy-api/internal/config"
	"github.com/campus-hub/academy-api/internal/handler"
	"github.com/campus-hub/academy-api/internal/middleware"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/observability"
)

// DefaultPolicy maps each operation to the roles allowed to perform it. All
// role checks in the application flow through this single table.
func DefaultPolicy() middleware.Policy {
	return middleware.Policy{
		"admin.users.create":         {models.RoleAdmin},
		"admin.users.list":           {models.RoleAdmin},
		"admin.users.update":         {models.RoleAdmin},
		"admin.users.delete":         {models.RoleAdmin},
		"admin.courses.create":       {models.RoleAdmin},
		"admin.courses.list":         {models.RoleAdmin},
		"admin.courses.update":       {models.RoleAdmin},
		"admin.courses.delete":       {models.RoleAdmin},
		"admin.courses.enroll":       {models.RoleAdmin, models.RoleStaff},
		"admin.dashboard.view":       {models.RoleAdmin},
		"admin.activity.list":        {models.RoleAdmin},
		"admin.announcements.create": {models.RoleAdmin},
		"admin.announcements.list":   {models.RoleAdmin},
		"admin.announcements.delete": {models.RoleAdmin},

		"staff.attendance.mark":       {models.RoleStaff},
		"staff.attendance.view":       {models.RoleStaff, models.RoleAdmin},
		"staff.courses.students":      {models.RoleStaff, models.RoleAdmin},
		"staff.courses.detail":        {models.RoleStaff, models.RoleAdmin},
		"staff.dashboard.view":        {models.RoleStaff},
		"staff.assignments.submitted": {models.RoleStaff},
		"staff.assignments.grade":     {models.RoleStaff},

		"assignments.create":      {models.RoleStaff},
		"assignments.submit":      {models.RoleStudent},
		"assignments.submissions": {models.RoleStaff, models.RoleAdmin},
		"assignments.student":     {models.RoleStudent},

		"student.dashboard.view":     {models.RoleStudent},
		"student.progress.view":      {models.RoleStudent},
		"student.submission.view":    {models.RoleStudent},
		"student.attendance.view":    {models.RoleStudent},
		"student.announcements.list": {models.RoleStudent},
	}
}

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	AdminHandler      *handler.AdminHandler
	StaffHandler      *handler.StaffHandler
	AssignmentHandler *handler.AssignmentHandler
	StudentHandler    *handler.StudentHandler
	Policy            middleware.Policy
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	policy := deps.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	authorize := func(operation string) fiber.Handler {
		return middleware.Authorize(policy, operation)
	}

	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app.Group("/api/auth"))
	}

	protected := middleware.Protected(cfg.JWTSecret)

	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(app.Group("/api/admin", protected), authorize)
	}
	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(app.Group("/api/staff", protected), authorize)
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(app.Group("/api/assignments", protected), authorize)
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app.Group("/api/student", protected), authorize)
	}
}
