package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// StaffDashboardService composes the per-course overview for staff members.
type StaffDashboardService interface {
	GetDashboard(ctx context.Context, staffID uint) ([]dto.StaffCourseOverview, error)
}

type staffDashboardService struct {
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewStaffDashboardService builds the staff dashboard aggregator.
func NewStaffDashboardService(courses repository.CourseRepository, assignments repository.AssignmentRepository, logger zerolog.Logger) StaffDashboardService {
	return &staffDashboardService{
		courses:     courses,
		assignments: assignments,
		logger:      logger.With().Str("component", "staff_dashboard_service").Logger(),
		tracer:      otel.Tracer("github.com/campus-hub/academy-api/internal/service/staff_dashboard"),
	}
}

func (s *staffDashboardService) GetDashboard(ctx context.Context, staffID uint) ([]dto.StaffCourseOverview, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.staff_overview")
	span.SetAttributes(attribute.Int64("dashboard.staff_id", int64(staffID)))
	defer span.End()

	courses, err := s.courses.ListByInstructor(ctx, staffID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_courses_failed")
		return nil, err
	}

	overviews := make([]dto.StaffCourseOverview, 0, len(courses))
	for _, course := range courses {
		assignments, listErr := s.assignments.ListByCourse(ctx, course.ID)
		if listErr != nil {
			span.RecordError(listErr)
			span.SetStatus(codes.Error, "list_assignments_failed")
			return nil, listErr
		}

		attendance := make([]dto.StudentAttendanceResponse, 0, len(course.Enrollments))
		for _, enrollment := range course.Enrollments {
			attendance = append(attendance, dto.NewStudentAttendanceResponse(enrollment))
		}

		summaries := make([]dto.AssignmentGradingSummary, 0, len(assignments))
		for _, assignment := range assignments {
			summaries = append(summaries, gradingSummary(assignment))
		}

		overviews = append(overviews, dto.StaffCourseOverview{
			CourseID:          course.ID,
			CourseTitle:       course.Title,
			StartDate:         course.StartDate,
			CreditHours:       course.CreditHours,
			EnrolledCount:     len(course.Enrollments),
			AttendanceRecords: attendance,
			AssignmentSummary: summaries,
		})
	}

	return overviews, nil
}

func gradingSummary(assignment models.Assignment) dto.AssignmentGradingSummary {
	total := len(assignment.Submissions)
	graded := 0
	for _, submission := range assignment.Submissions {
		if submission.IsGraded() {
			graded++
		}
	}

	return dto.AssignmentGradingSummary{
		AssignmentID:        assignment.ID,
		Title:               assignment.Title,
		TotalSubmissions:    total,
		GradedSubmissions:   graded,
		UngradedSubmissions: total - graded,
	}
}
