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

// AdminDashboardService aggregates platform-wide totals for administrators.
type AdminDashboardService interface {
	GetDashboard(ctx context.Context) (dto.AdminDashboardResponse, error)
}

type adminDashboardService struct {
	analytics repository.AnalyticsRepository
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAdminDashboardService builds the administrator dashboard aggregator.
func NewAdminDashboardService(analytics repository.AnalyticsRepository, logger zerolog.Logger) AdminDashboardService {
	return &adminDashboardService{
		analytics: analytics,
		logger:    logger.With().Str("component", "admin_dashboard_service").Logger(),
		tracer:    otel.Tracer("github.com/campus-hub/academy-api/internal/service/admin_dashboard"),
	}
}

func (s *adminDashboardService) GetDashboard(ctx context.Context) (dto.AdminDashboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.admin_totals")
	defer span.End()

	totalUsers, err := s.analytics.CountUsers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_users_failed")
		return dto.AdminDashboardResponse{}, err
	}

	totalStudents, err := s.analytics.CountUsersByRole(ctx, models.RoleStudent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_students_failed")
		return dto.AdminDashboardResponse{}, err
	}

	totalStaff, err := s.analytics.CountUsersByRole(ctx, models.RoleStaff)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_staff_failed")
		return dto.AdminDashboardResponse{}, err
	}

	totalAdmins, err := s.analytics.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_admins_failed")
		return dto.AdminDashboardResponse{}, err
	}

	totalCourses, err := s.analytics.CountCourses(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_courses_failed")
		return dto.AdminDashboardResponse{}, err
	}

	totalAssignments, err := s.analytics.CountAssignments(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_assignments_failed")
		return dto.AdminDashboardResponse{}, err
	}

	span.SetAttributes(attribute.Int64("dashboard.total_users", totalUsers))

	return dto.AdminDashboardResponse{
		TotalUsers:       totalUsers,
		TotalStudents:    totalStudents,
		TotalStaff:       totalStaff,
		TotalAdmins:      totalAdmins,
		TotalCourses:     totalCourses,
		TotalAssignments: totalAssignments,
	}, nil
}
