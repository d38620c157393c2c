package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/app/repositories"
	"github.com/middleway/middleway/internal/pkg/apperrors"
)

// MeetupService defines the interface for meetup operations
type MeetupService interface {
	Create(ctx context.Context, creatorID int64, req *dto.CreateMeetupRequest) (*dto.MeetupResponse, error)
	ListForUser(ctx context.Context, userID int64) (*dto.MeetupListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MeetupResponse, error)
	Update(ctx context.Context, id, callerID int64, req *dto.UpdateMeetupRequest) (*dto.MeetupResponse, error)
	Delete(ctx context.Context, id, callerID int64) error
	SetParticipantStatus(ctx context.Context, meetupID, userID int64, status string) (*dto.MeetupResponse, error)
	ListAllForModerators(ctx context.Context) (*dto.MeetupListResponse, error)
}

// meetupServiceImpl implements MeetupService
type meetupServiceImpl struct {
	meetupRepo repositories.IMeetupRepository
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewMeetupService creates a new MeetupService
func NewMeetupService(meetupRepo repositories.IMeetupRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) MeetupService {
	return &meetupServiceImpl{
		meetupRepo: meetupRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// resolveParticipants maps invitee emails to user records. Resolution is
// all-or-nothing: a single unregistered email fails the whole operation with
// the complete missing set, so a meetup can never be created with ambiguous
// membership. Entries come back in lookup order, not input order.
func (s *meetupServiceImpl) resolveParticipants(ctx context.Context, emails []string) ([]*models.MeetupParticipant, error) {
	if len(emails) == 0 {
		return nil, apperrors.NewValidationError("participants list cannot be empty")
	}

	users, err := s.userRepo.GetByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(users))
	for _, u := range users {
		found[u.Email] = true
	}

	var missing []string
	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if seen[email] {
			continue
		}
		seen[email] = true
		if !found[email] {
			missing = append(missing, email)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewUnresolvedParticipantsError(missing)
	}

	participants := make([]*models.MeetupParticipant, 0, len(users))
	for _, u := range users {
		participants = append(participants, &models.MeetupParticipant{
			UserID: u.ID,
			Status: models.ParticipantPending,
		})
	}

	return participants, nil
}

// Create resolves the invitees and persists the meetup with status planned
func (s *meetupServiceImpl) Create(ctx context.Context, creatorID int64, req *dto.CreateMeetupRequest) (*dto.MeetupResponse, error) {
	participants, err := s.resolveParticipants(ctx, req.Participants)
	if err != nil {
		return nil, err
	}

	meetup := &models.Meetup{
		CreatorID:     creatorID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		ScheduledDate: req.ScheduledDate,
		Status:        models.MeetupPlanned,
	}

	meetupID, err := s.meetupRepo.Create(ctx, meetup, participants)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("meetupID", meetupID).
		Int64("creatorID", creatorID).
		Int("participants", len(participants)).
		Msg("Meetup created")

	return s.GetByID(ctx, meetupID)
}

// ListForUser returns every meetup the user created or was invited to
func (s *meetupServiceImpl) ListForUser(ctx context.Context, userID int64) (*dto.MeetupListResponse, error) {
	meetups, err := s.meetupRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return meetupList(meetups), nil
}

// GetByID returns a single meetup with identities expanded
func (s *meetupServiceImpl) GetByID(ctx context.Context, id int64) (*dto.MeetupResponse, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := meetupResponse(meetup)
	return &resp, nil
}

// Update applies the provided fields to a meetup. Only the creator may update.
func (s *meetupServiceImpl) Update(ctx context.Context, id, callerID int64, req *dto.UpdateMeetupRequest) (*dto.MeetupResponse, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if meetup.CreatorID != callerID {
		return nil, apperrors.NewForbiddenError("not authorized to edit this meetup")
	}

	if req.Title != nil {
		meetup.Title = *req.Title
	}
	if req.Description != nil {
		meetup.Description = *req.Description
	}
	if req.Location != nil {
		meetup.Location = *req.Location
	}
	if req.ScheduledDate != nil {
		meetup.ScheduledDate = *req.ScheduledDate
	}
	if req.Status != nil {
		if !models.ValidMeetupStatus(*req.Status) {
			return nil, apperrors.ErrInvalidMeetupStatus
		}
		meetup.Status = models.MeetupStatus(*req.Status)
	}

	if err := s.meetupRepo.Update(ctx, meetup); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a meetup. Only the creator may delete.
func (s *meetupServiceImpl) Delete(ctx context.Context, id, callerID int64) error {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if meetup.CreatorID != callerID {
		return apperrors.NewForbiddenError("not authorized to delete this meetup")
	}

	if err := s.meetupRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("meetupID", id).Int64("callerID", callerID).Msg("Meetup deleted")
	return nil
}

// SetParticipantStatus overwrites the participant's response status. Any valid
// enum value is accepted from any direction, declining after accepting included.
func (s *meetupServiceImpl) SetParticipantStatus(ctx context.Context, meetupID, userID int64, status string) (*dto.MeetupResponse, error) {
	if !models.ValidParticipantStatus(status) {
		return nil, apperrors.NewValidationError("status must be pending, accepted or declined")
	}

	if _, err := s.meetupRepo.GetByID(ctx, meetupID); err != nil {
		return nil, err
	}

	if _, err := s.meetupRepo.GetParticipant(ctx, meetupID, userID); err != nil {
		return nil, err
	}

	if err := s.meetupRepo.SetParticipantStatus(ctx, meetupID, userID, models.ParticipantStatus(status)); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, meetupID)
}

// ListAllForModerators returns every meetup, no ownership filter
func (s *meetupServiceImpl) ListAllForModerators(ctx context.Context) (*dto.MeetupListResponse, error) {
	meetups, err := s.meetupRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return meetupList(meetups), nil
}

func meetupResponse(m *models.Meetup) dto.MeetupResponse {
	resp := dto.MeetupResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Location:      m.Location,
		ScheduledDate: m.ScheduledDate,
		Status:        string(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Participants:  []dto.ParticipantResponse{},
	}

	if m.Creator != nil {
		resp.Creator = dto.UserSummary{
			ID:    m.Creator.ID,
			Name:  m.Creator.Name,
			Email: m.Creator.Email,
		}
	}

	for _, p := range m.Participants {
		pr := dto.ParticipantResponse{
			UserID: p.UserID,
			Status: string(p.Status),
		}
		if p.User != nil {
			pr.Name = p.User.Name
			pr.Email = p.User.Email
		}
		resp.Participants = append(resp.Participants, pr)
	}

	return resp
}

func meetupList(meetups []*models.Meetup) *dto.MeetupListResponse {
	responses := make([]dto.MeetupResponse, 0, len(meetups))
	for _, m := range meetups {
		responses = append(responses, meetupResponse(m))
	}
	return &dto.MeetupListResponse{Meetups: responses}
}
