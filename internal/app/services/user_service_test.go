package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	existing := func() *models.User {
		return &models.User{
			ID:                1,
			Name:              "Old Name",
			Email:             "old@example.com",
			Password:          "old-hash",
			Role:              models.RoleRegular,
			Location:          "Campus North",
			PreferredDistance: 10,
			Preferences:       []string{"coffee"},
		}
	}

	t.Run("only provided fields change", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		user, err := service.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
			Name: strPtr("New Name"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "old@example.com", user.Email)
		assert.Equal(t, "Campus North", user.Location)
		assert.Equal(t, "old-hash", user.Password)
		// Keeping the same email must not trigger a conflict check
		mockRepo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new email must be free", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing(), nil)
		mockRepo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		user, err := service.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
			Email: strPtr("taken@example.com"),
		})

		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new password is re-hashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		user, err := service.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
			Password: strPtr("new-password"),
		})

		assert.NoError(t, err)
		assert.NotEqual(t, "old-hash", user.Password)
		assert.NotEqual(t, "new-password", user.Password)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_PromoteUser(t *testing.T) {
	t.Run("promotes to moderator", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.User{
			ID: 2, Name: "Target", Email: "target@example.com", Role: models.RoleRegular,
		}, nil)
		mockRepo.On("UpdateRole", mock.Anything, int64(2), models.RoleModerator).Return(nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		profile, err := service.PromoteUser(context.Background(), 2, "moderator")

		assert.NoError(t, err)
		assert.Equal(t, "moderator", profile.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("idempotent when role unchanged", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.User{
			ID: 2, Role: models.RoleModerator,
		}, nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		profile, err := service.PromoteUser(context.Background(), 2, "moderator")

		assert.NoError(t, err)
		assert.Equal(t, "moderator", profile.Role)
		mockRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("demotion back to regular is allowed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.User{
			ID: 2, Role: models.RoleAdmin,
		}, nil)
		mockRepo.On("UpdateRole", mock.Anything, int64(2), models.RoleRegular).Return(nil)

		service := NewUserService(mockRepo, zerolog.Nop())
		profile, err := service.PromoteUser(context.Background(), 2, "regular")

		assert.NoError(t, err)
		assert.Equal(t, "regular", profile.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewUserService(mockRepo, zerolog.Nop())
		profile, err := service.PromoteUser(context.Background(), 2, "superuser")

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Nil(t, profile)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown target user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrUserNotFound)

		service := NewUserService(mockRepo, zerolog.Nop())
		profile, err := service.PromoteUser(context.Background(), 99, "admin")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, profile)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_ListOthers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetAllExcept", mock.Anything, int64(1)).Return([]*models.User{
		{ID: 2, Name: "Alice", Email: "alice@example.com", Location: "Library"},
		{ID: 3, Name: "Bob", Email: "bob@example.com"},
	}, nil)

	service := NewUserService(mockRepo, zerolog.Nop())
	users, err := service.ListOthers(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.Equal(t, "Library", users[0].Location)
	mockRepo.AssertExpectations(t)
}
