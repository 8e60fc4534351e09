package dto

import (
	"time"

	"github.com/campus-hub/academy-api/internal/models"
)

// AttendanceMarkRequest records one day's status for a student.
type AttendanceMarkRequest struct {
	Date   string `json:"date" validate:"required"`
	Status string `json:"status" validate:"required,oneof=present absent"`
}

// AttendanceRecordResponse is one calendar day's attendance entry.
type AttendanceRecordResponse struct {
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// NewAttendanceRecordResponses maps an enrollment's attendance sequence.
func NewAttendanceRecordResponses(records []models.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, AttendanceRecordResponse{
			Date:   record.Date,
			Status: record.Status,
		})
	}
	return responses
}

// StudentAttendanceResponse pairs a student identity with their attendance log.
type StudentAttendanceResponse struct {
	StudentID  uint                       `json:"student_id"`
	Name       string                     `json:"name"`
	Email      string                     `json:"email"`
	Attendance []AttendanceRecordResponse `json:"attendance"`
}

// NewStudentAttendanceResponse builds the per-student attendance view.
func NewStudentAttendanceResponse(enrollment models.Enrollment) StudentAttendanceResponse {
	response := StudentAttendanceResponse{
		StudentID:  enrollment.StudentID,
		Attendance: NewAttendanceRecordResponses(enrollment.Attendance),
	}
	if enrollment.Student != nil {
		response.Name = enrollment.Student.Name
		response.Email = enrollment.Student.Email
	}
	return response
}
