package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/dto"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
)

// AnnouncementService handles campus-wide announcements.
type AnnouncementService interface {
	Create(ctx context.Context, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error)
	List(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewAnnouncementService constructs an AnnouncementService instance.
func NewAnnouncementService(repo repository.AnnouncementRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:      repo,
		validator: validate,
		policy:    bluemonday.UGCPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
	}
}

func (s *announcementService) Create(ctx context.Context, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	dueDate, err := parseDate(payload.DueDate)
	if err != nil {
		return dto.AnnouncementResponse{}, ErrInvalidDate
	}

	announcement := models.Announcement{
		Title:   strings.TrimSpace(payload.Title),
		Content: s.policy.Sanitize(strings.TrimSpace(payload.Content)),
		DueDate: dueDate,
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "announcement.created",
			EntityType: "announcement",
			EntityID:   &announcement.ID,
		})
	}

	s.logger.Info().Uint("announcement_id", announcement.ID).Msg("announcement created")

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	announcements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewAnnouncementResponseSlice(announcements), nil
}

func (s *announcementService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "announcement.deleted",
			EntityType: "announcement",
			EntityID:   &id,
			Metadata:   map[string]interface{}{"title": announcement.Title},
		})
	}

	return nil
}
