package dto

import (
	"time"

	"github.com/campus-hub/academy-api/internal/models"
)

// CourseCreateRequest is the administrator payload for creating a course.
type CourseCreateRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	InstructorID *uint  `json:"instructor_id" validate:"required"`
	StartDate    string `json:"start_date" validate:"required"`
	CreditHours  int    `json:"credit_hours" validate:"required,oneof=3 4"`
}

// CourseUpdateRequest patches course fields; empty values are left untouched.
type CourseUpdateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID *uint  `json:"instructor_id"`
}

// CourseResponse is the course shape returned by course endpoints.
type CourseResponse struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Instructor    *UserSummary `json:"instructor,omitempty"`
	StartDate     time.Time    `json:"start_date"`
	CreditHours   int          `json:"credit_hours"`
	EnrolledCount int          `json:"enrolled_count"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewCourseResponse maps a course aggregate onto the response shape.
func NewCourseResponse(course models.Course) CourseResponse {
	response := CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		StartDate:     course.StartDate,
		CreditHours:   course.CreditHours,
		EnrolledCount: len(course.Enrollments),
		CreatedAt:     course.CreatedAt,
	}

	if course.Instructor != nil {
		summary := NewUserSummary(*course.Instructor)
		response.Instructor = &summary
	}

	return response
}

// NewCourseResponseSlice maps a slice of course aggregates.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}

// EnrolledStudentResponse identifies one enrolled student.
type EnrolledStudentResponse struct {
	StudentID  uint      `json:"student_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrolledStudentResponses extracts enrolled student identities from a course.
func NewEnrolledStudentResponses(course models.Course) []EnrolledStudentResponse {
	students := make([]EnrolledStudentResponse, 0, len(course.Enrollments))
	for _, enrollment := range course.Enrollments {
		entry := EnrolledStudentResponse{
			StudentID:  enrollment.StudentID,
			EnrolledAt: enrollment.EnrolledAt,
		}
		if enrollment.Student != nil {
			entry.Name = enrollment.Student.Name
			entry.Email = enrollment.Student.Email
		}
		students = append(students, entry)
	}
	return students
}
