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

func newEnrollmentFixture(t *testing.T) (*memoryCourseRepo, *memoryUserRepo, EnrollmentService) {
	t.Helper()
	courses := newMemoryCourseRepo()
	users := newMemoryUserRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewEnrollmentService(courses, users, validate, &recordedActivity{}, testLogger())
	return courses, users, svc
}

func TestEnrollmentServiceEnrollSuccess(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Operating Systems", CreditHours: 3})
	student := users.addUser(models.User{Name: "Ayesha", Email: "ayesha@example.com", Role: models.RoleStudent})

	result, err := svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{ID: 99, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, 1, result.EnrolledCount)

	stored, err := courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	require.True(t, stored.IsEnrolled(student.ID))
}

func TestEnrollmentServiceEnrollDuplicate(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Databases"})
	student := users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	stored, err := courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, stored.Enrollments, 1)
}

func TestEnrollmentServiceEnrollRejectsNonStudent(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Networks"})
	staff := users.addUser(models.User{Email: "t@example.com", Role: models.RoleStaff})

	_, err := svc.Enroll(context.Background(), course.ID, staff.ID, ActivityActor{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnrollmentServiceEnrollMissingCourse(t *testing.T) {
	_, users, svc := newEnrollmentFixture(t)
	student := users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.Enroll(context.Background(), 42, student.ID, ActivityActor{})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollmentServiceMarkAttendanceAppends(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	student := users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{})
	require.NoError(t, err)

	result, err := svc.MarkAttendance(context.Background(), course.ID, student.ID, dto.AttendanceMarkRequest{
		Date:   "2026-03-02",
		Status: models.AttendancePresent,
	})
	require.NoError(t, err)
	require.Len(t, result.Attendance, 1)
	require.Equal(t, models.AttendancePresent, result.Attendance[0].Status)
}

func TestEnrollmentServiceMarkAttendanceOverwritesSameDay(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	student := users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{})
	require.NoError(t, err)

	_, err = svc.MarkAttendance(context.Background(), course.ID, student.ID, dto.AttendanceMarkRequest{
		Date:   "2026-03-02",
		Status: models.AttendancePresent,
	})
	require.NoError(t, err)

	// Same calendar day expressed as a full timestamp still hits the same
	// record.
	result, err := svc.MarkAttendance(context.Background(), course.ID, student.ID, dto.AttendanceMarkRequest{
		Date:   "2026-03-02T15:04:05Z",
		Status: models.AttendanceAbsent,
	})
	require.NoError(t, err)
	require.Len(t, result.Attendance, 1)
	require.Equal(t, models.AttendanceAbsent, result.Attendance[0].Status)
}

func TestEnrollmentServiceMarkAttendanceNotEnrolled(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.MarkAttendance(context.Background(), course.ID, 1, dto.AttendanceMarkRequest{
		Date:   "2026-03-02",
		Status: models.AttendancePresent,
	})
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestEnrollmentServiceMarkAttendanceRejectsBadInput(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	student := users.addUser(models.User{Email: "s@example.com", Role: models.RoleStudent})

	_, err := svc.Enroll(context.Background(), course.ID, student.ID, ActivityActor{})
	require.NoError(t, err)

	_, err = svc.MarkAttendance(context.Background(), course.ID, student.ID, dto.AttendanceMarkRequest{
		Date:   "not-a-date",
		Status: models.AttendancePresent,
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestEnrollmentServiceStudentAttendanceScopedToOwnRecords(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	first := users.addUser(models.User{Email: "a@example.com", Role: models.RoleStudent})
	second := users.addUser(models.User{Email: "b@example.com", Role: models.RoleStudent})

	for _, id := range []uint{first.ID, second.ID} {
		_, err := svc.Enroll(context.Background(), course.ID, id, ActivityActor{})
		require.NoError(t, err)
	}

	_, err := svc.MarkAttendance(context.Background(), course.ID, first.ID, dto.AttendanceMarkRequest{
		Date:   "2026-03-02",
		Status: models.AttendancePresent,
	})
	require.NoError(t, err)

	records, err := svc.StudentAttendance(context.Background(), course.ID, second.ID)
	require.NoError(t, err)
	require.Empty(t, records)

	records, err = svc.StudentAttendance(context.Background(), course.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestEnrollmentServiceGetAttendanceForWholeCourse(t *testing.T) {
	courses, users, svc := newEnrollmentFixture(t)
	course := courses.addCourse(models.Course{Title: "Algorithms"})
	first := users.addUser(models.User{Email: "a@example.com", Role: models.RoleStudent})
	second := users.addUser(models.User{Email: "b@example.com", Role: models.RoleStudent})

	for _, id := range []uint{first.ID, second.ID} {
		_, err := svc.Enroll(context.Background(), course.ID, id, ActivityActor{})
		require.NoError(t, err)
	}

	all, err := svc.GetAttendance(context.Background(), course.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	one, err := svc.GetAttendance(context.Background(), course.ID, &first.ID)
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, first.ID, one[0].StudentID)
}
