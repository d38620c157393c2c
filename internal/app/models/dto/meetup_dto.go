package dto

import (
	"time"

	"github.com/middleway/middleway/internal/app/models"
)

// --- Request DTOs ---

// CreateMeetupRequest represents meetup creation data. Participants are
// invitee email addresses, resolved to user records server-side.
type CreateMeetupRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Location      models.Location `json:"location" binding:"required"`
	ScheduledDate time.Time       `json:"scheduledDate" binding:"required"`
	Participants  []string        `json:"participants" binding:"required"`
}

// UpdateMeetupRequest represents a partial meetup update. Only the listed
// fields can change; absent fields are left untouched.
type UpdateMeetupRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Location      *models.Location `json:"location,omitempty"`
	ScheduledDate *time.Time       `json:"scheduledDate,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

// ParticipantStatusRequest sets a participant's response status
type ParticipantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined"`
}

// --- Response DTOs ---

// ParticipantResponse represents a meetup participant with identity expanded
type ParticipantResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
}

// MeetupResponse represents a meetup with creator and participants expanded
type MeetupResponse struct {
	ID            int64                 `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Location      models.Location       `json:"location"`
	ScheduledDate time.Time             `json:"scheduledDate"`
	Status        string                `json:"status"`
	Creator       UserSummary           `json:"creator"`
	Participants  []ParticipantResponse `json:"participants"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// MeetupListResponse represents a list of meetups
type MeetupListResponse struct {
	Meetups []MeetupResponse `json:"meetups"`
}
