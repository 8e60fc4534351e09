package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/service"
	"github.com/campus-hub/academy-api/internal/utils"
)

// StaffHandler serves instructor-facing endpoints: attendance, course
// rosters, grading and the staff dashboard.
type StaffHandler struct {
	courses     service.CourseService
	enrollments service.EnrollmentService
	assignments service.AssignmentService
	dashboard   service.StaffDashboardService
	logger      zerolog.Logger
}

func NewStaffHandler(
	courses service.CourseService,
	enrollments service.EnrollmentService,
	assignments service.AssignmentService,
	dashboard service.StaffDashboardService,
	logger zerolog.Logger,
) *StaffHandler {
	return &StaffHandler{
		courses:     courses,
		enrollments: enrollments,
		assignments: assignments,
		dashboard:   dashboard,
		logger:      logger.With().Str("component", "staff_handler").Logger(),
	}
}

func (h *StaffHandler) Register(router fiber.Router, authorize func(operation string) fiber.Handler) {
	router.Put("/courses/:courseId/attendance/:studentId", authorize("staff.attendance.mark"), h.markAttendance)
	router.Get("/courses/:courseId/attendance/:studentId?", authorize("staff.attendance.view"), h.getAttendance)

	router.Get("/:courseId/students", authorize("staff.courses.students"), h.enrolledStudents)
	router.Get("/course/:courseId", authorize("staff.courses.detail"), h.courseDetails)

	router.Get("/dashboard", authorize("staff.dashboard.view"), h.getDashboard)
	router.Get("/submitted-assignments", authorize("staff.assignments.submitted"), h.submittedAssignments)
	router.Put("/assignments/:assignmentId/grade/:submissionId", authorize("staff.assignments.grade"), h.gradeSubmission)
}

func (h *StaffHandler) markAttendance(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.enrollments.MarkAttendance(c.Context(), courseID, studentID, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attendance recorded", record)
}

func (h *StaffHandler) getAttendance(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var studentID *uint
	if c.Params("studentId") != "" {
		id, err := parseUintParam(c, "studentId")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		studentID = &id
	}

	attendance, err := h.enrollments.GetAttendance(c.Context(), courseID, studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", attendance)
}

func (h *StaffHandler) enrolledStudents(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	title, students, err := h.courses.EnrolledStudents(c.Context(), courseID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrolled students retrieved", fiber.Map{
		"course_title": title,
		"students":     students,
	})
}

func (h *StaffHandler) courseDetails(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	details, err := h.courses.GetDetails(c.Context(), courseID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course retrieved", details)
}

func (h *StaffHandler) getDashboard(c *fiber.Ctx) error {
	staffID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := h.dashboard.GetDashboard(c.Context(), staffID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", overview)
}

func (h *StaffHandler) submittedAssignments(c *fiber.Ctx) error {
	staffID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	assignments, err := h.assignments.SubmittedAssignments(c.Context(), staffID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submitted assignments retrieved", assignments)
}

func (h *StaffHandler) gradeSubmission(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	submissionID, err := parseUintParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	staffID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.assignments.Grade(c.Context(), assignmentID, submissionID, staffID, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission graded", submission)
}
