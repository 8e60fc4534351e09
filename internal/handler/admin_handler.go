package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/service"
	"github.com/campus-hub/academy-api/internal/utils"
)

// AdminHandler manages administrator endpoints: user provisioning, course
// management, enrollment, announcements and the admin dashboard.
type AdminHandler struct {
	users         service.UserService
	courses       service.CourseService
	enrollments   service.EnrollmentService
	announcements service.AnnouncementService
	dashboard     service.AdminDashboardService
	activity      service.ActivityService
	logger        zerolog.Logger
}

// NewAdminHandler builds an admin handler instance.
func NewAdminHandler(
	users service.UserService,
	courses service.CourseService,
	enrollments service.EnrollmentService,
	announcements service.AnnouncementService,
	dashboard service.AdminDashboardService,
	activity service.ActivityService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		users:         users,
		courses:       courses,
		enrollments:   enrollments,
		announcements: announcements,
		dashboard:     dashboard,
		activity:      activity,
		logger:        logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. Each route is
// guarded by the authorization gate for its operation.
func (h *AdminHandler) Register(router fiber.Router, authorize func(operation string) fiber.Handler) {
	router.Post("/create-user", authorize("admin.users.create"), h.createUser)

	router.Post("/courses", authorize("admin.courses.create"), h.createCourse)
	router.Get("/courses", authorize("admin.courses.list"), h.listCourses)
	router.Put("/courses/:courseId", authorize("admin.courses.update"), h.updateCourse)
	router.Delete("/courses/:courseId", authorize("admin.courses.delete"), h.deleteCourse)
	router.Put("/courses/:courseId/enroll/:studentId", authorize("admin.courses.enroll"), h.enrollStudent)

	router.Get("/dashboard", authorize("admin.dashboard.view"), h.getDashboard)
	router.Get("/instructors", authorize("admin.users.list"), h.listInstructors)
	router.Get("/students", authorize("admin.users.list"), h.listStudents)
	router.Get("/activity", authorize("admin.activity.list"), h.listActivity)

	router.Post("/announcements", authorize("admin.announcements.create"), h.createAnnouncement)
	router.Get("/announcements", authorize("admin.announcements.list"), h.listAnnouncements)
	router.Delete("/announcements/:announcementId", authorize("admin.announcements.delete"), h.deleteAnnouncement)

	router.Put("/students/:studentId", authorize("admin.users.update"), h.updateStudent)
	router.Delete("/students/:studentId", authorize("admin.users.delete"), h.deleteStudent)
	router.Put("/staff/:staffId", authorize("admin.users.update"), h.updateStaff)
	router.Delete("/staff/:staffId", authorize("admin.users.delete"), h.deleteStaff)
}

func (h *AdminHandler) createUser(c *fiber.Ctx) error {
	var payload dto.CreateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created successfully", user)
}

func (h *AdminHandler) createCourse(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courses.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created successfully", course)
}

func (h *AdminHandler) listCourses(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *AdminHandler) updateCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courses.Update(c.Context(), courseID, payload, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course updated successfully", course)
}

func (h *AdminHandler) deleteCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.courses.Delete(c.Context(), courseID, actorFromContext(c)); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course deleted successfully", nil)
}

func (h *AdminHandler) enrollStudent(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.enrollments.Enroll(c.Context(), courseID, studentID, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "student enrolled successfully", course)
}

func (h *AdminHandler) getDashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboard.GetDashboard(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *AdminHandler) listInstructors(c *fiber.Ctx) error {
	instructors, err := h.users.ListInstructors(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "instructors retrieved", instructors)
}

func (h *AdminHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.users.ListStudents(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *AdminHandler) listActivity(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	query := service.ActivityQuery{
		Page:     page,
		PageSize: pageSize,
		Action:   strings.TrimSpace(c.Query("action")),
	}
	if raw := strings.TrimSpace(c.Query("actor_id")); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid actor_id")
		}
		actorID := uint(parsed)
		query.ActorID = &actorID
	}

	activity, err := h.activity.List(c.Context(), query)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "activity retrieved", activity)
}

func (h *AdminHandler) createAnnouncement(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	announcement, err := h.announcements.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created successfully", announcement)
}

func (h *AdminHandler) listAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.announcements.List(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "announcements retrieved", announcements)
}

func (h *AdminHandler) deleteAnnouncement(c *fiber.Ctx) error {
	announcementID, err := parseUintParam(c, "announcementId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.announcements.Delete(c.Context(), announcementID, actorFromContext(c)); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "announcement deleted successfully", nil)
}

func (h *AdminHandler) updateStudent(c *fiber.Ctx) error {
	return h.updateUserWithRole(c, "studentId", models.RoleStudent, "student updated successfully")
}

func (h *AdminHandler) deleteStudent(c *fiber.Ctx) error {
	return h.deleteUserWithRole(c, "studentId", models.RoleStudent, "student deleted successfully")
}

func (h *AdminHandler) updateStaff(c *fiber.Ctx) error {
	return h.updateUserWithRole(c, "staffId", models.RoleStaff, "staff updated successfully")
}

func (h *AdminHandler) deleteStaff(c *fiber.Ctx) error {
	return h.deleteUserWithRole(c, "staffId", models.RoleStaff, "staff deleted successfully")
}

func (h *AdminHandler) updateUserWithRole(c *fiber.Ctx, param, role, message string) error {
	id, err := parseUintParam(c, param)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.UpdateWithRole(c.Context(), id, role, payload, actorFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, message, user)
}

func (h *AdminHandler) deleteUserWithRole(c *fiber.Ctx, param, role, message string) error {
	id, err := parseUintParam(c, param)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.users.DeleteWithRole(c.Context(), id, role, actorFromContext(c)); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, message, nil)
}
