package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// StudentDashboardService produces the per-course view and progress metric for
// a student. Only courses the student is enrolled in ever appear.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) ([]dto.StudentCourseOverview, error)
	GetProgress(ctx context.Context, studentID uint) (dto.StudentProgressResponse, error)
}

type studentDashboardService struct {
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewStudentDashboardService builds the student dashboard aggregator.
func NewStudentDashboardService(courses repository.CourseRepository, assignments repository.AssignmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		courses:     courses,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "student_dashboard_service").Logger(),
		tracer:      otel.Tracer("github.com/campus-hub/academy-api/internal/service/student_dashboard"),
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) ([]dto.StudentCourseOverview, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	ctx, span := s.tracer.Start(ctx, "dashboard.student_overview")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response []dto.StudentCourseOverview
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	overviews, err := s.buildDashboard(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dashboard_build_failed")
		return nil, err
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(overviews); marshalErr == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return overviews, nil
}

func (s *studentDashboardService) buildDashboard(ctx context.Context, studentID uint) ([]dto.StudentCourseOverview, error) {
	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	overviews := make([]dto.StudentCourseOverview, 0, len(courses))
	for _, course := range courses {
		enrollment := course.EnrollmentFor(studentID)
		if enrollment == nil {
			continue
		}

		assignments, listErr := s.assignments.ListByCourse(ctx, course.ID)
		if listErr != nil {
			return nil, listErr
		}

		statuses := make([]dto.StudentAssignmentStatus, 0, len(assignments))
		for _, assignment := range assignments {
			status := dto.StudentAssignmentStatus{
				AssignmentID: assignment.ID,
				Title:        assignment.Title,
			}
			if submission := assignment.LatestSubmissionBy(studentID); submission != nil {
				status.Submitted = true
				status.Grade = submission.Grade
				status.Feedback = submission.Feedback
			}
			statuses = append(statuses, status)
		}

		overviews = append(overviews, dto.StudentCourseOverview{
			CourseID:          course.ID,
			CourseTitle:       course.Title,
			AttendanceRecords: dto.NewAttendanceRecordResponses(enrollment.Attendance),
			AssignmentSummary: statuses,
		})
	}

	return overviews, nil
}

// GetProgress averages the graded-assignment fraction and the present-day
// fraction as percentages. A missing denominator contributes 0 rather than a
// division by zero.
func (s *studentDashboardService) GetProgress(ctx context.Context, studentID uint) (dto.StudentProgressResponse, error) {
	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProgressResponse{}, err
	}

	var totalAssignments, gradedAssignments int
	var totalAttendance, presentDays int

	for _, course := range courses {
		enrollment := course.EnrollmentFor(studentID)
		if enrollment == nil {
			continue
		}

		for _, record := range enrollment.Attendance {
			totalAttendance++
			if record.Status == models.AttendancePresent {
				presentDays++
			}
		}

		assignments, listErr := s.assignments.ListByCourse(ctx, course.ID)
		if listErr != nil {
			return dto.StudentProgressResponse{}, listErr
		}

		for _, assignment := range assignments {
			totalAssignments++
			if submission := assignment.LatestSubmissionBy(studentID); submission != nil && submission.IsGraded() {
				gradedAssignments++
			}
		}
	}

	gradedPercent := percentage(gradedAssignments, totalAssignments)
	attendancePercent := percentage(presentDays, totalAttendance)

	return dto.StudentProgressResponse{
		GradedPercent:     gradedPercent,
		AttendancePercent: attendancePercent,
		OverallProgress:   round2((gradedPercent + attendancePercent) / 2),
	}, nil
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
