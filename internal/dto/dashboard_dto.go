package dto

import "time"

// AdminDashboardResponse aggregates platform-wide counts.
type AdminDashboardResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalStaff       int64 `json:"total_staff"`
	TotalAdmins      int64 `json:"total_admins"`
	TotalCourses     int64 `json:"total_courses"`
	TotalAssignments int64 `json:"total_assignments"`
}

// AssignmentGradingSummary counts submissions for one assignment. A submission
// is graded when its grade text is non-empty.
type AssignmentGradingSummary struct {
	AssignmentID        uint   `json:"assignment_id"`
	Title               string `json:"title"`
	TotalSubmissions    int    `json:"total_submissions"`
	GradedSubmissions   int    `json:"graded_submissions"`
	UngradedSubmissions int    `json:"ungraded_submissions"`
}

// StaffCourseOverview is one course's slice of the staff dashboard.
type StaffCourseOverview struct {
	CourseID          uint                        `json:"course_id"`
	CourseTitle       string                      `json:"course_title"`
	StartDate         time.Time                   `json:"start_date"`
	CreditHours       int                         `json:"credit_hours"`
	EnrolledCount     int                         `json:"enrolled_count"`
	AttendanceRecords []StudentAttendanceResponse `json:"attendance_records"`
	AssignmentSummary []AssignmentGradingSummary  `json:"assignment_summary"`
}

// StudentAssignmentStatus describes one assignment from a student's view.
type StudentAssignmentStatus struct {
	AssignmentID uint   `json:"assignment_id"`
	Title        string `json:"title"`
	Submitted    bool   `json:"submitted"`
	Grade        string `json:"grade,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
}

// StudentCourseOverview is one course's slice of the student dashboard.
type StudentCourseOverview struct {
	CourseID          uint                       `json:"course_id"`
	CourseTitle       string                     `json:"course_title"`
	AttendanceRecords []AttendanceRecordResponse `json:"attendance_records"`
	AssignmentSummary []StudentAssignmentStatus  `json:"assignment_summary"`
}

// StudentProgressResponse is the derived overall-progress metric. Percentages
// are rounded to two decimals; a missing denominator contributes 0.
type StudentProgressResponse struct {
	GradedPercent     float64 `json:"graded_percent"`
	AttendancePercent float64 `json:"attendance_percent"`
	OverallProgress   float64 `json:"overall_progress"`
}
