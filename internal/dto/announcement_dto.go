package dto

import (
	"time"

	"github.com/campus-hub/academy-api/internal/models"
)

// AnnouncementCreateRequest is the administrator payload for publishing an announcement.
type AnnouncementCreateRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	DueDate string `json:"due_date" validate:"required"`
}

// AnnouncementResponse is the announcement shape returned to clients.
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnnouncementResponse maps an announcement model onto the response shape.
func NewAnnouncementResponse(announcement models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        announcement.ID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		DueDate:   announcement.DueDate,
		CreatedAt: announcement.CreatedAt,
	}
}

// NewAnnouncementResponseSlice maps a slice of announcement models.
func NewAnnouncementResponseSlice(announcements []models.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		responses = append(responses, NewAnnouncementResponse(announcement))
	}
	return responses
}
