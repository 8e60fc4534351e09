package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// EnrollmentService owns the enrollment and attendance ledger. Every mutation
// loads the course aggregate, mutates it in memory and persists it back in one
// transaction, so readers never observe partial state.
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, studentID uint, actor ActivityActor) (dto.CourseResponse, error)
	MarkAttendance(ctx context.Context, courseID, studentID uint, payload dto.AttendanceMarkRequest) (dto.StudentAttendanceResponse, error)
	GetAttendance(ctx context.Context, courseID uint, studentID *uint) ([]dto.StudentAttendanceResponse, error)
	StudentAttendance(ctx context.Context, courseID, studentID uint) ([]dto.AttendanceRecordResponse, error)
}

type enrollmentService struct {
	courses   repository.CourseRepository
	users     repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(courses repository.CourseRepository, users repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		courses:   courses,
		users:     users,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "enrollment_service").Logger(),
		now:       time.Now,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, courseID, studentID uint, actor ActivityActor) (dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrUserNotFound
		}
		return dto.CourseResponse{}, err
	}
	if !student.IsStudent() {
		return dto.CourseResponse{}, ErrUserNotFound
	}

	if course.IsEnrolled(studentID) {
		return dto.CourseResponse{}, ErrAlreadyEnrolled
	}

	course.Enrollments = append(course.Enrollments, models.Enrollment{
		CourseID:   course.ID,
		StudentID:  studentID,
		EnrolledAt: s.now(),
		Attendance: []models.AttendanceRecord{},
	})

	if err := s.courses.SaveAggregate(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "course.student_enrolled",
			EntityType: "course",
			EntityID:   &course.ID,
			Metadata:   map[string]interface{}{"student_id": studentID},
		})
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("student_id", studentID).Msg("student enrolled")

	return dto.NewCourseResponse(course), nil
}

func (s *enrollmentService) MarkAttendance(ctx context.Context, courseID, studentID uint, payload dto.AttendanceMarkRequest) (dto.StudentAttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentAttendanceResponse{}, err
	}

	if !models.ValidAttendanceStatus(payload.Status) {
		return dto.StudentAttendanceResponse{}, ErrInvalidAttendance
	}

	day, err := parseDate(payload.Date)
	if err != nil {
		return dto.StudentAttendanceResponse{}, ErrInvalidDate
	}
	day = day.UTC().Truncate(24 * time.Hour)

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return dto.StudentAttendanceResponse{}, err
	}

	enrollment := course.EnrollmentFor(studentID)
	if enrollment == nil {
		return dto.StudentAttendanceResponse{}, ErrNotEnrolled
	}

	// One record per calendar day: re-marking overwrites the status instead
	// of appending a second entry.
	if existing := enrollment.RecordFor(day); existing != nil {
		existing.Status = payload.Status
	} else {
		enrollment.Attendance = append(enrollment.Attendance, models.AttendanceRecord{
			EnrollmentID: enrollment.ID,
			Date:         day,
			Status:       payload.Status,
		})
	}

	if err := s.courses.SaveAggregate(ctx, &course); err != nil {
		return dto.StudentAttendanceResponse{}, err
	}

	s.logger.Info().
		Uint("course_id", courseID).
		Uint("student_id", studentID).
		Str("status", payload.Status).
		Msg("attendance marked")

	return dto.NewStudentAttendanceResponse(*enrollment), nil
}

func (s *enrollmentService) GetAttendance(ctx context.Context, courseID uint, studentID *uint) ([]dto.StudentAttendanceResponse, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if studentID != nil {
		enrollment := course.EnrollmentFor(*studentID)
		if enrollment == nil {
			return nil, ErrNotEnrolled
		}
		return []dto.StudentAttendanceResponse{dto.NewStudentAttendanceResponse(*enrollment)}, nil
	}

	responses := make([]dto.StudentAttendanceResponse, 0, len(course.Enrollments))
	for _, enrollment := range course.Enrollments {
		responses = append(responses, dto.NewStudentAttendanceResponse(enrollment))
	}
	return responses, nil
}

func (s *enrollmentService) StudentAttendance(ctx context.Context, courseID, studentID uint) ([]dto.AttendanceRecordResponse, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment := course.EnrollmentFor(studentID)
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	return dto.NewAttendanceRecordResponses(enrollment.Attendance), nil
}

func (s *enrollmentService) getCourse(ctx context.Context, id uint) (models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	return course, nil
}
