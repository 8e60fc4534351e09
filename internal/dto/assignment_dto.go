package dto

import (
	"time"

	"github.com/campus-hub/academy-api/internal/models"
)

// AssignmentCreateRequest is the staff payload for creating an assignment.
type AssignmentCreateRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// GradeRequest sets the grade and feedback on one submission. Both fields are
// free-form text.
type GradeRequest struct {
	Grade    string `json:"grade" validate:"required"`
	Feedback string `json:"feedback"`
}

// AssignmentResponse is the assignment shape returned by assignment endpoints.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	CourseTitle string    `json:"course_title,omitempty"`
	StaffID     uint      `json:"staff_id"`
	StaffName   string    `json:"staff_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAssignmentResponse maps an assignment model onto the response shape.
func NewAssignmentResponse(assignment models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:          assignment.ID,
		CourseID:    assignment.CourseID,
		StaffID:     assignment.StaffID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     assignment.DueDate,
		CreatedAt:   assignment.CreatedAt,
	}
	if assignment.Course != nil {
		response.CourseTitle = assignment.Course.Title
	}
	if assignment.Staff != nil {
		response.StaffName = assignment.Staff.Name
	}
	return response
}

// NewAssignmentResponseSlice maps a slice of assignment models.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}

// SubmissionResponse is one submission enriched with submitter identity.
type SubmissionResponse struct {
	ID           uint      `json:"id"`
	AssignmentID uint      `json:"assignment_id"`
	StudentID    uint      `json:"student_id"`
	StudentName  string    `json:"student_name,omitempty"`
	StudentEmail string    `json:"student_email,omitempty"`
	FileURL      string    `json:"file_url"`
	DownloadURL  string    `json:"download_url"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Grade        string    `json:"grade,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
}

// NewSubmissionResponse maps a submission onto the response shape.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		FileURL:      submission.FileURL,
		DownloadURL:  submission.DownloadURL,
		SubmittedAt:  submission.SubmittedAt,
		Grade:        submission.Grade,
		Feedback:     submission.Feedback,
	}
	if submission.Student != nil {
		response.StudentName = submission.Student.Name
		response.StudentEmail = submission.Student.Email
	}
	return response
}

// NewSubmissionResponseSlice maps a slice of submissions.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}

// SubmittedAssignmentResponse groups one assignment with its submissions for
// the staff review view.
type SubmittedAssignmentResponse struct {
	AssignmentID uint                 `json:"assignment_id"`
	Title        string               `json:"title"`
	CourseTitle  string               `json:"course_title"`
	Submissions  []SubmissionResponse `json:"submissions"`
}
