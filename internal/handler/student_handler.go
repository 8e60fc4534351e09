package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/service"
	"github.com/campus-hub/academy-api/internal/utils"
)

// StudentHandler serves the student self-service surface. Every endpoint is
// scoped to the authenticated student; there are no cross-student reads here.
type StudentHandler struct {
	dashboard     service.StudentDashboardService
	assignments   service.AssignmentService
	enrollments   service.EnrollmentService
	announcements service.AnnouncementService
	logger        zerolog.Logger
}

func NewStudentHandler(
	dashboard service.StudentDashboardService,
	assignments service.AssignmentService,
	enrollments service.EnrollmentService,
	announcements service.AnnouncementService,
	logger zerolog.Logger,
) *StudentHandler {
	return &StudentHandler{
		dashboard:     dashboard,
		assignments:   assignments,
		enrollments:   enrollments,
		announcements: announcements,
		logger:        logger.With().Str("component", "student_handler").Logger(),
	}
}

func (h *StudentHandler) Register(router fiber.Router, authorize func(operation string) fiber.Handler) {
	router.Get("/dashboard", authorize("student.dashboard.view"), h.getDashboard)
	router.Get("/progress", authorize("student.progress.view"), h.getProgress)
	router.Get("/assignments/:assignmentId/my-submission", authorize("student.submission.view"), h.mySubmission)
	router.Get("/courses/:courseId/attendance", authorize("student.attendance.view"), h.myAttendance)
	router.Get("/announcements", authorize("student.announcements.list"), h.listAnnouncements)
}

func (h *StudentHandler) getDashboard(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := h.dashboard.GetDashboard(c.Context(), studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", overview)
}

func (h *StudentHandler) getProgress(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	progress, err := h.dashboard.GetProgress(c.Context(), studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}

func (h *StudentHandler) mySubmission(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	submission, err := h.assignments.MySubmission(c.Context(), assignmentID, studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *StudentHandler) myAttendance(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	attendance, err := h.enrollments.StudentAttendance(c.Context(), courseID, studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", attendance)
}

func (h *StudentHandler) listAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.announcements.List(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "announcements retrieved", announcements)
}
