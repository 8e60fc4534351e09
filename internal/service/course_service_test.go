package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
)

func newCourseFixture(t *testing.T) (*memoryCourseRepo, *memoryAssignmentRepo, CourseService) {
	t.Helper()
	courses := newMemoryCourseRepo()
	assignments := newMemoryAssignmentRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewCourseService(courses, assignments, validate, &recordedActivity{}, testLogger())
	return courses, assignments, svc
}

func TestCourseServiceCreateSuccess(t *testing.T) {
	_, _, svc := newCourseFixture(t)

	result, err := svc.Create(context.Background(), dto.CourseCreateRequest{
		Title:        "Operating Systems",
		Description:  "Processes, memory, file systems",
		InstructorID: uintPtr(7),
		StartDate:    "2026-09-07",
		CreditHours:  4,
	}, ActivityActor{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, "Operating Systems", result.Title)
	require.Equal(t, 4, result.CreditHours)
	require.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), result.StartDate)
}

func TestCourseServiceCreateRejectsCreditHours(t *testing.T) {
	_, _, svc := newCourseFixture(t)

	_, err := svc.Create(context.Background(), dto.CourseCreateRequest{
		Title:        "Short course",
		Description:  "One credit only",
		InstructorID: uintPtr(7),
		StartDate:    "2026-09-07",
		CreditHours:  1,
	}, ActivityActor{})
	require.Error(t, err)
}

func TestCourseServiceCreateRejectsBadDate(t *testing.T) {
	_, _, svc := newCourseFixture(t)

	_, err := svc.Create(context.Background(), dto.CourseCreateRequest{
		Title:        "Bad date",
		Description:  "Whenever",
		InstructorID: uintPtr(7),
		StartDate:    "soon",
		CreditHours:  3,
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestCourseServiceUpdatePatchesFields(t *testing.T) {
	courses, _, svc := newCourseFixture(t)
	course := courses.addCourse(models.Course{Title: "Old title", Description: "Old description", InstructorID: uintPtr(7)})

	result, err := svc.Update(context.Background(), course.ID, dto.CourseUpdateRequest{
		Title:        "New title",
		InstructorID: uintPtr(8),
	}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, "New title", result.Title)
	require.Equal(t, "Old description", result.Description)

	stored, err := courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	require.Equal(t, uint(8), *stored.InstructorID)
}

func TestCourseServiceUpdateMissing(t *testing.T) {
	_, _, svc := newCourseFixture(t)

	_, err := svc.Update(context.Background(), 42, dto.CourseUpdateRequest{Title: "Nope"}, ActivityActor{})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseServiceDeleteMissing(t *testing.T) {
	_, _, svc := newCourseFixture(t)

	err := svc.Delete(context.Background(), 42, ActivityActor{})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseServiceGetDetails(t *testing.T) {
	courses, assignments, svc := newCourseFixture(t)
	course := courses.addCourse(models.Course{
		Title:        "Databases",
		InstructorID: uintPtr(7),
		Enrollments: []models.Enrollment{
			{StudentID: 3, EnrolledAt: time.Now()},
		},
	})
	assignments.addAssignment(models.Assignment{CourseID: course.ID, StaffID: 7, Title: "ER modelling"})

	details, err := svc.GetDetails(context.Background(), course.ID)
	require.NoError(t, err)
	require.Equal(t, course.ID, details.Course.ID)
	require.Len(t, details.Students, 1)
	require.Len(t, details.Assignments, 1)
}

func TestCourseServiceEnrolledStudents(t *testing.T) {
	courses, _, svc := newCourseFixture(t)
	course := courses.addCourse(models.Course{
		Title: "Networks",
		Enrollments: []models.Enrollment{
			{StudentID: 3, EnrolledAt: time.Now()},
			{StudentID: 4, EnrolledAt: time.Now()},
		},
	})

	title, students, err := svc.EnrolledStudents(context.Background(), course.ID)
	require.NoError(t, err)
	require.Equal(t, "Networks", title)
	require.Len(t, students, 2)
}
