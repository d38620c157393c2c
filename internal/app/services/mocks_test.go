package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/middleway/middleway/internal/app/models"
)

// MockUserRepository is a mock implementation of IUserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmails(ctx context.Context, emails []string) ([]*models.User, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAllExcept(ctx context.Context, userID int64) ([]*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// MockMeetupRepository is a mock implementation of IMeetupRepository.
type MockMeetupRepository struct {
	mock.Mock
}

func (m *MockMeetupRepository) Create(ctx context.Context, meetup *models.Meetup, participants []*models.MeetupParticipant) (int64, error) {
	args := m.Called(ctx, meetup, participants)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMeetupRepository) GetByID(ctx context.Context, id int64) (*models.Meetup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meetup), args.Error(1)
}

func (m *MockMeetupRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Meetup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meetup), args.Error(1)
}

func (m *MockMeetupRepository) ListAll(ctx context.Context) ([]*models.Meetup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meetup), args.Error(1)
}

func (m *MockMeetupRepository) Update(ctx context.Context, meetup *models.Meetup) error {
	args := m.Called(ctx, meetup)
	return args.Error(0)
}

func (m *MockMeetupRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetupRepository) GetParticipant(ctx context.Context, meetupID, userID int64) (*models.MeetupParticipant, error) {
	args := m.Called(ctx, meetupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeetupParticipant), args.Error(1)
}

func (m *MockMeetupRepository) SetParticipantStatus(ctx context.Context, meetupID, userID int64, status models.ParticipantStatus) error {
	args := m.Called(ctx, meetupID, userID, status)
	return args.Error(0)
}
