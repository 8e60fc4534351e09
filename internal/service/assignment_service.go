package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// AssignmentService owns the assignment and submission ledger. Submission and
// grading mutations go through the assignment aggregate's load, mutate and
// persist cycle.
type AssignmentService interface {
	Create(ctx context.Context, staffID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Submit(ctx context.Context, assignmentID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	Grade(ctx context.Context, assignmentID, submissionID, staffID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error)
	SubmittedAssignments(ctx context.Context, staffID uint) ([]dto.SubmittedAssignmentResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error)
	MySubmission(ctx context.Context, assignmentID, studentID uint) (dto.SubmissionResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	uploader    FileUploader
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments repository.AssignmentRepository, courses repository.CourseRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		courses:     courses,
		validator:   validate,
		uploader:    uploader,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		tracer:      otel.Tracer("github.com/campus-hub/academy-api/internal/service/assignment"),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, staffID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrCourseNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	// Only the course's instructor may create assignments on it.
	if course.InstructorID == nil || *course.InstructorID != staffID {
		return dto.AssignmentResponse{}, ErrNotCourseInstructor
	}

	assignment := models.Assignment{
		CourseID:    course.ID,
		StaffID:     staffID,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Submissions: []models.Submission{},
	}

	if payload.DueDate != "" {
		dueDate, parseErr := parseDate(payload.DueDate)
		if parseErr != nil {
			return dto.AssignmentResponse{}, ErrInvalidDate
		}
		assignment.DueDate = dueDate
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Uint("course_id", course.ID).
		Uint("staff_id", staffID).
		Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Submit(ctx context.Context, assignmentID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if file == nil {
		return dto.SubmissionResponse{}, fmt.Errorf("submission file is required")
	}

	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, assignment.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrCourseNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !course.IsEnrolled(studentID) {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	if err := validateFileType(file); err != nil {
		return dto.SubmissionResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	fileURL, err := s.uploader.Upload(ctx, SubmissionPath(assignment.ID, studentID, file.Filename), reader)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	// Resubmission appends; history is kept and the latest entry wins on
	// "my submission" lookups.
	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		FileURL:      fileURL,
		DownloadURL:  DownloadURL(fileURL, file.Filename),
		SubmittedAt:  s.now(),
	}
	assignment.Submissions = append(assignment.Submissions, submission)

	if err := s.assignments.SaveAggregate(ctx, &assignment); err != nil {
		return dto.SubmissionResponse{}, err
	}

	saved := assignment.Submissions[len(assignment.Submissions)-1]

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Uint("student_id", studentID).
		Msg("submission created")

	return dto.NewSubmissionResponse(saved), nil
}

func (s *assignmentService) Grade(ctx context.Context, assignmentID, submissionID, staffID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "grading.update")
	span.SetAttributes(
		attribute.Int64("grading.assignment_id", int64(assignmentID)),
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.staff_id", int64(staffID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	// Grading authority follows assignment ownership.
	if assignment.StaffID != staffID {
		span.SetStatus(codes.Error, "not_assignment_owner")
		return dto.SubmissionResponse{}, ErrNotAssignmentOwner
	}

	submission := assignment.SubmissionByID(submissionID)
	if submission == nil {
		span.SetStatus(codes.Error, "submission_not_found")
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	submission.Grade = payload.Grade
	submission.Feedback = payload.Feedback

	if err := s.assignments.SaveAggregate(ctx, &assignment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save_failed")
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Uint("submission_id", submission.ID).
		Msg("submission graded")

	return dto.NewSubmissionResponse(*submission), nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error) {
	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(assignment.Submissions), nil
}

func (s *assignmentService) SubmittedAssignments(ctx context.Context, staffID uint) ([]dto.SubmittedAssignmentResponse, error) {
	assignments, err := s.assignments.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmittedAssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		entry := dto.SubmittedAssignmentResponse{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			Submissions:  dto.NewSubmissionResponseSlice(assignment.Submissions),
		}
		if assignment.Course != nil {
			entry.CourseTitle = assignment.Course.Title
		}
		responses = append(responses, entry)
	}

	return responses, nil
}

func (s *assignmentService) ListForStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var responses []dto.AssignmentResponse
	for _, course := range courses {
		assignments, listErr := s.assignments.ListByCourse(ctx, course.ID)
		if listErr != nil {
			return nil, listErr
		}
		responses = append(responses, dto.NewAssignmentResponseSlice(assignments)...)
	}

	return responses, nil
}

func (s *assignmentService) MySubmission(ctx context.Context, assignmentID, studentID uint) (dto.SubmissionResponse, error) {
	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := assignment.LatestSubmissionBy(studentID)
	if submission == nil {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	return dto.NewSubmissionResponse(*submission), nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}

	return assignment, nil
}

func validateFileType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "application/zip", "application/x-zip-compressed", "text/plain"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("unsupported file type: %s", mime.String())
}
