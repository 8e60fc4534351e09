package dto

import (
	"time"

	"github.com/campus-hub/academy-api/internal/models"
)

// CreateUserRequest is the administrator payload for provisioning a user.
// Student profile fields are ignored for non-student roles.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin staff student"`
	Program  string `json:"program" validate:"omitempty,oneof=BSSE BSCS"`
	Session  string `json:"session" validate:"omitempty"`
	Semester string `json:"semester" validate:"omitempty"`
}

// UpdateUserRequest renames a user and optionally resets the password.
type UpdateUserRequest struct {
	Name        string `json:"name" validate:"omitempty"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6"`
}

// UserResponse is the full user shape returned to administrators.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Program   string    `json:"program,omitempty"`
	Session   string    `json:"session,omitempty"`
	Semester  string    `json:"semester,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user model onto the response shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Program:   user.Program,
		Session:   user.Session,
		Semester:  user.Semester,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponseSlice maps a slice of user models.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
