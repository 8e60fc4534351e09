package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// CourseDetailResponse composes a course with its roster and assignments for
// the staff course view.
type CourseDetailResponse struct {
	Course      dto.CourseResponse            `json:"course"`
	Students    []dto.EnrolledStudentResponse `json:"students"`
	Assignments []dto.AssignmentResponse      `json:"assignments"`
}

// CourseService covers administrator course management and staff course views.
type CourseService interface {
	Create(ctx context.Context, payload dto.CourseCreateRequest, actor ActivityActor) (dto.CourseResponse, error)
	Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest, actor ActivityActor) (dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	GetDetails(ctx context.Context, id uint) (CourseDetailResponse, error)
	EnrolledStudents(ctx context.Context, id uint) (string, []dto.EnrolledStudentResponse, error)
}

type courseService struct {
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courses repository.CourseRepository, assignments repository.AssignmentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:     courses,
		assignments: assignments,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest, actor ActivityActor) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	if !models.ValidCreditHours(payload.CreditHours) {
		return dto.CourseResponse{}, ErrInvalidCreditHours
	}

	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		return dto.CourseResponse{}, ErrInvalidDate
	}

	course := models.Course{
		Title:        strings.TrimSpace(payload.Title),
		Description:  strings.TrimSpace(payload.Description),
		InstructorID: payload.InstructorID,
		StartDate:    startDate,
		CreditHours:  payload.CreditHours,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.recordActivity(ctx, actor, "course.created", course.ID)
	s.logger.Info().Uint("course_id", course.ID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest, actor ActivityActor) (dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	if title := strings.TrimSpace(payload.Title); title != "" {
		course.Title = title
	}
	if description := strings.TrimSpace(payload.Description); description != "" {
		course.Description = description
	}
	if payload.InstructorID != nil {
		course.InstructorID = payload.InstructorID
		course.Instructor = nil
	}

	if err := s.courses.SaveAggregate(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.recordActivity(ctx, actor, "course.updated", course.ID)

	updated, err := s.getCourse(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(updated), nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "course.deleted", id)
	s.logger.Info().Uint("course_id", id).Msg("course deleted")

	return nil
}

func (s *courseService) GetDetails(ctx context.Context, id uint) (CourseDetailResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return CourseDetailResponse{}, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, course.ID)
	if err != nil {
		return CourseDetailResponse{}, err
	}

	return CourseDetailResponse{
		Course:      dto.NewCourseResponse(course),
		Students:    dto.NewEnrolledStudentResponses(course),
		Assignments: dto.NewAssignmentResponseSlice(assignments),
	}, nil
}

func (s *courseService) EnrolledStudents(ctx context.Context, id uint) (string, []dto.EnrolledStudentResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return "", nil, err
	}

	return course.Title, dto.NewEnrolledStudentResponses(course), nil
}

func (s *courseService) getCourse(ctx context.Context, id uint) (models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	return course, nil
}

func (s *courseService) recordActivity(ctx context.Context, actor ActivityActor, action string, courseID uint) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "course",
		EntityID:   &courseID,
	})
}
