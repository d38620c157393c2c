package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/pkg/apperrors"
)

func sampleMeetup(id, creatorID int64) *models.Meetup {
	return &models.Meetup{
		ID:        id,
		CreatorID: creatorID,
		Title:     "Study session",
		Location: models.Location{
			Name: "Library",
			Coordinates: models.Coordinates{
				Lat: 41.015,
				Lng: 28.979,
			},
		},
		ScheduledDate: time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Status:        models.MeetupPlanned,
		Creator:       &models.User{ID: creatorID, Name: "Creator", Email: "creator@example.com"},
	}
}

func TestMeetupService_Create(t *testing.T) {
	baseReq := func() *dto.CreateMeetupRequest {
		return &dto.CreateMeetupRequest{
			Title:         "Study session",
			Location:      models.Location{Name: "Library"},
			ScheduledDate: time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
			Participants:  []string{"alice@example.com", "bob@example.com"},
		}
	}

	t.Run("empty participants rejected before any store call", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		req := baseReq()
		req.Participants = []string{}

		resp, err := service.Create(context.Background(), 1, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Nil(t, resp)
		userRepo.AssertNotCalled(t, "GetByEmails", mock.Anything, mock.Anything)
		meetupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("all unregistered emails reported, nothing persisted", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmails", mock.Anything, []string{"alice@example.com", "bob@example.com"}).
			Return([]*models.User{{ID: 2, Email: "alice@example.com"}}, nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.Create(context.Background(), 1, baseReq())

		assert.Nil(t, resp)
		var unresolved *apperrors.UnresolvedParticipantsError
		assert.True(t, errors.As(err, &unresolved))
		assert.Equal(t, []string{"bob@example.com"}, unresolved.Missing)
		meetupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		userRepo.AssertExpectations(t)
	})

	t.Run("resolved participants start pending", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmails", mock.Anything, []string{"alice@example.com", "bob@example.com"}).
			Return([]*models.User{
				{ID: 2, Email: "alice@example.com"},
				{ID: 3, Email: "bob@example.com"},
			}, nil)

		var captured []*models.MeetupParticipant
		meetupRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meetup"), mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).([]*models.MeetupParticipant)
			}).
			Return(int64(10), nil)
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.Create(context.Background(), 1, baseReq())

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, int64(10), resp.ID)
		assert.Len(t, captured, 2)
		for _, p := range captured {
			assert.Equal(t, models.ParticipantPending, p.Status)
		}
		meetupRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})
}

func TestMeetupService_Update(t *testing.T) {
	t.Run("only the creator may update", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		title := "Hijacked"
		resp, err := service.Update(context.Background(), 10, 99, &dto.UpdateMeetupRequest{Title: &title})

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Nil(t, resp)
		meetupRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("status may move in any direction", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)

		current := sampleMeetup(10, 1)
		current.Status = models.MeetupCompleted
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(current, nil)
		meetupRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Meetup")).
			Run(func(args mock.Arguments) {
				assert.Equal(t, models.MeetupPlanned, args.Get(1).(*models.Meetup).Status)
			}).
			Return(nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		status := "planned"
		_, err := service.Update(context.Background(), 10, 1, &dto.UpdateMeetupRequest{Status: &status})

		assert.NoError(t, err)
		meetupRepo.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		status := "postponed"
		resp, err := service.Update(context.Background(), 10, 1, &dto.UpdateMeetupRequest{Status: &status})

		assert.ErrorIs(t, err, apperrors.ErrInvalidMeetupStatus)
		assert.Nil(t, resp)
		meetupRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown meetup", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrMeetupNotFound)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.Update(context.Background(), 404, 1, &dto.UpdateMeetupRequest{})

		assert.ErrorIs(t, err, apperrors.ErrMeetupNotFound)
		assert.Nil(t, resp)
	})
}

func TestMeetupService_Delete(t *testing.T) {
	t.Run("creator deletes", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)
		meetupRepo.On("Delete", mock.Anything, int64(10)).Return(nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		assert.NoError(t, service.Delete(context.Background(), 10, 1))
		meetupRepo.AssertExpectations(t)
	})

	t.Run("participant may not delete", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		err := service.Delete(context.Background(), 10, 2)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		meetupRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestMeetupService_SetParticipantStatus(t *testing.T) {
	t.Run("accept then decline", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)

		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)
		meetupRepo.On("GetParticipant", mock.Anything, int64(10), int64(2)).
			Return(&models.MeetupParticipant{MeetupID: 10, UserID: 2, Status: models.ParticipantAccepted}, nil)
		meetupRepo.On("SetParticipantStatus", mock.Anything, int64(10), int64(2), models.ParticipantDeclined).Return(nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.SetParticipantStatus(context.Background(), 10, 2, "declined")

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		meetupRepo.AssertExpectations(t)
	})

	t.Run("caller is not a participant", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)

		meetupRepo.On("GetByID", mock.Anything, int64(10)).Return(sampleMeetup(10, 1), nil)
		meetupRepo.On("GetParticipant", mock.Anything, int64(10), int64(5)).
			Return(nil, apperrors.ErrParticipantNotFound)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.SetParticipantStatus(context.Background(), 10, 5, "accepted")

		assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
		assert.Nil(t, resp)
		meetupRepo.AssertNotCalled(t, "SetParticipantStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status value", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.SetParticipantStatus(context.Background(), 10, 2, "maybe")

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Nil(t, resp)
		meetupRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestMeetupService_Listings(t *testing.T) {
	t.Run("list for user", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("ListForUser", mock.Anything, int64(2)).
			Return([]*models.Meetup{sampleMeetup(10, 1)}, nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.ListForUser(context.Background(), 2)

		assert.NoError(t, err)
		assert.Len(t, resp.Meetups, 1)
		assert.Equal(t, "creator@example.com", resp.Meetups[0].Creator.Email)
		meetupRepo.AssertExpectations(t)
	})

	t.Run("moderator listing is unfiltered", func(t *testing.T) {
		meetupRepo := new(MockMeetupRepository)
		userRepo := new(MockUserRepository)
		meetupRepo.On("ListAll", mock.Anything).
			Return([]*models.Meetup{sampleMeetup(10, 1), sampleMeetup(11, 2)}, nil)

		service := NewMeetupService(meetupRepo, userRepo, zerolog.Nop())
		resp, err := service.ListAllForModerators(context.Background())

		assert.NoError(t, err)
		assert.Len(t, resp.Meetups, 2)
		meetupRepo.AssertExpectations(t)
	})
}
