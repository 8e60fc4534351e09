package models

import "time"

// Role values recognised by the authorization layer.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// User is the single identity record for every actor in the system. The
// role tag decides which operations the user may perform; student-only
// profile fields stay empty for staff and administrators.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:32;not null;default:student" json:"role"`

	// Student profile.
	Program  string `gorm:"size:16" json:"program,omitempty"`
	Session  string `gorm:"size:16" json:"session,omitempty"`
	Semester string `gorm:"size:16" json:"semester,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStudent reports whether the user carries the student role.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsStaff reports whether the user carries the staff role.
func (u User) IsStaff() bool {
	return u.Role == RoleStaff
}
