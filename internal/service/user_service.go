package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// UserService covers administrator-driven identity management.
type UserService interface {
	Create(ctx context.Context, payload dto.CreateUserRequest, actor ActivityActor) (dto.UserResponse, error)
	UpdateWithRole(ctx context.Context, id uint, role string, payload dto.UpdateUserRequest, actor ActivityActor) (dto.UserResponse, error)
	DeleteWithRole(ctx context.Context, id uint, role string, actor ActivityActor) error
	ListInstructors(ctx context.Context) ([]dto.UserResponse, error)
	ListStudents(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, payload dto.CreateUserRequest, actor ActivityActor) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}

	// Student profile fields stay empty for other roles.
	if payload.Role == models.RoleStudent {
		user.Program = payload.Program
		user.Session = payload.Session
		user.Semester = payload.Semester
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.recordActivity(ctx, actor, "user.created", user.ID, map[string]interface{}{"role": user.Role})
	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user created")

	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateWithRole(ctx context.Context, id uint, role string, payload dto.UpdateUserRequest, actor ActivityActor) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.getWithRole(ctx, id, role)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if name := strings.TrimSpace(payload.Name); name != "" {
		user.Name = name
	}

	if payload.NewPassword != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return dto.UserResponse{}, hashErr
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.recordActivity(ctx, actor, "user.updated", user.ID, map[string]interface{}{"role": user.Role})

	return dto.NewUserResponse(user), nil
}

func (s *userService) DeleteWithRole(ctx context.Context, id uint, role string, actor ActivityActor) error {
	user, err := s.getWithRole(ctx, id, role)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, actor, "user.deleted", user.ID, map[string]interface{}{"role": user.Role})
	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user deleted")

	return nil
}

func (s *userService) ListInstructors(ctx context.Context) ([]dto.UserResponse, error) {
	instructors, err := s.users.ListByRole(ctx, models.RoleStaff)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(instructors), nil
}

func (s *userService) ListStudents(ctx context.Context) ([]dto.UserResponse, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(students), nil
}

// getWithRole loads a user and verifies it holds the expected role; a role
// mismatch reads as not found so admin endpoints cannot touch other roles.
func (s *userService) getWithRole(ctx context.Context, id uint, role string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if user.Role != role {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) recordActivity(ctx context.Context, actor ActivityActor, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "user",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}
