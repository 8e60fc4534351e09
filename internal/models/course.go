package models

import "time"

// Attendance status values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// ValidAttendanceStatus reports whether the given status is one of the
// accepted attendance values.
func ValidAttendanceStatus(status string) bool {
	return status == AttendancePresent || status == AttendanceAbsent
}

// Course is the aggregate root owning enrollments and their attendance
// ledgers. Enrollment and attendance mutations load the full aggregate,
// mutate it in memory and persist it back in a single transaction.
type Course struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	InstructorID *uint        `json:"instructor_id"`
	Instructor   *User        `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	StartDate    time.Time    `gorm:"not null" json:"start_date"`
	CreditHours  int          `gorm:"not null" json:"credit_hours"`
	Enrollments  []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"enrollments,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// EnrollmentFor returns the enrollment entry for the given student, or nil.
func (c *Course) EnrollmentFor(studentID uint) *Enrollment {
	for i := range c.Enrollments {
		if c.Enrollments[i].StudentID == studentID {
			return &c.Enrollments[i]
		}
	}
	return nil
}

// IsEnrolled reports whether the student holds an enrollment on the course.
func (c *Course) IsEnrolled(studentID uint) bool {
	return c.EnrollmentFor(studentID) != nil
}

// ValidCreditHours reports whether the value is an accepted credit-hour load.
func ValidCreditHours(hours int) bool {
	return hours == 3 || hours == 4
}

// Enrollment links one student to one course and carries that student's
// attendance history for the course.
type Enrollment struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	CourseID   uint               `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID  uint               `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id"`
	Student    *User              `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	EnrolledAt time.Time          `gorm:"not null" json:"enrolled_at"`
	Attendance []AttendanceRecord `gorm:"constraint:OnDelete:CASCADE" json:"attendance"`
}

// RecordFor returns the attendance record for the given calendar day, or nil.
func (e *Enrollment) RecordFor(day time.Time) *AttendanceRecord {
	for i := range e.Attendance {
		if sameCalendarDay(e.Attendance[i].Date, day) {
			return &e.Attendance[i]
		}
	}
	return nil
}

// AttendanceRecord holds one day's attendance status for an enrollment.
// At most one record exists per calendar day; re-marking overwrites status.
type AttendanceRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID uint      `gorm:"not null" json:"-"`
	Date         time.Time `gorm:"not null" json:"date"`
	Status       string    `gorm:"size:16;not null" json:"status"`
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
