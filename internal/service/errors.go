package service

import "errors"

// Sentinel errors surfaced by the services and mapped to HTTP status codes in
// the handler layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists with this email")

	ErrCourseNotFound      = errors.New("course not found")
	ErrInvalidCreditHours  = errors.New("credit hours must be 3 or 4")
	ErrAlreadyEnrolled     = errors.New("student already enrolled")
	ErrNotEnrolled         = errors.New("student not enrolled in this course")
	ErrInvalidAttendance   = errors.New("invalid attendance status")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNotCourseInstructor = errors.New("not the instructor of this course")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotAssignmentOwner = errors.New("not the owner of this assignment")

	ErrAnnouncementNotFound = errors.New("announcement not found")
)
