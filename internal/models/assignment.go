package models

import "time"

// Assignment is the aggregate root owning student submissions. It belongs to
// a course and to the staff member who created it; grading authority follows
// that ownership.
type Assignment struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CourseID    uint         `gorm:"not null" json:"course_id"`
	Course      *Course      `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StaffID     uint         `gorm:"not null" json:"staff_id"`
	Staff       *User        `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	DueDate     time.Time    `json:"due_date"`
	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SubmissionByID returns the submission with the given identifier, or nil.
func (a *Assignment) SubmissionByID(submissionID uint) *Submission {
	for i := range a.Submissions {
		if a.Submissions[i].ID == submissionID {
			return &a.Submissions[i]
		}
	}
	return nil
}

// LatestSubmissionBy returns the student's most recent submission, or nil.
// Resubmissions append rather than replace, so several entries can exist for
// the same student.
func (a *Assignment) LatestSubmissionBy(studentID uint) *Submission {
	var latest *Submission
	for i := range a.Submissions {
		sub := &a.Submissions[i]
		if sub.StudentID != studentID {
			continue
		}
		if latest == nil || sub.SubmittedAt.After(latest.SubmittedAt) {
			latest = sub
		}
	}
	return latest
}

// Submission is one student's uploaded artifact for one assignment.
// There is no explicit state field: the submission counts as graded exactly
// when the grade text is non-empty.
type Submission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null" json:"assignment_id"`
	StudentID    uint      `gorm:"not null" json:"student_id"`
	Student      *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FileURL      string    `gorm:"size:512" json:"file_url"`
	DownloadURL  string    `gorm:"size:640" json:"download_url"`
	SubmittedAt  time.Time `gorm:"not null" json:"submitted_at"`
	Grade        string    `gorm:"size:64" json:"grade"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
}

// IsGraded reports whether a grade has been recorded.
func (s Submission) IsGraded() bool {
	return s.Grade != ""
}
