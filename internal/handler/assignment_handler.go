package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/service"
	"github.com/campus-hub/academy-api/internal/utils"
)

// AssignmentHandler serves the shared assignment surface: creation by staff,
// file submission by students and submission listings.
type AssignmentHandler struct {
	assignments service.AssignmentService
	logger      zerolog.Logger
}

func NewAssignmentHandler(assignments service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		logger:      logger.With().Str("component", "assignment_handler").Logger(),
	}
}

func (h *AssignmentHandler) Register(router fiber.Router, authorize func(operation string) fiber.Handler) {
	router.Post("/create", authorize("assignments.create"), h.create)
	router.Post("/submit/:assignmentId", authorize("assignments.submit"), h.submit)
	router.Get("/submissions/:assignmentId", authorize("assignments.submissions"), h.listSubmissions)
	router.Get("/student", authorize("assignments.student"), h.listForStudent)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	staffID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.assignments.Create(c.Context(), staffID, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created successfully", assignment)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	submission, err := h.assignments.Submit(c.Context(), assignmentID, studentID, file)
	if err != nil {
		// Submitting to a course the student is not enrolled in is an
		// authorization failure, not a lookup miss.
		if errors.Is(err, service.ErrNotEnrolled) {
			return utils.SendError(c, fiber.StatusForbidden, "not enrolled in this course")
		}
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment submitted successfully", submission)
}

func (h *AssignmentHandler) listSubmissions(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.assignments.ListSubmissions(c.Context(), assignmentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *AssignmentHandler) listForStudent(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	assignments, err := h.assignments.ListForStudent(c.Context(), studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}
