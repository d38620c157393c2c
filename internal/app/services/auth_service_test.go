package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/pkg/apperrors"
	"github.com/middleway/middleway/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           *dto.RegisterRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			req:  &dto.RegisterRequest{Name: "Test User", Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("EmailExists", mock.Anything, "test@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "email already registered",
			req:  &dto.RegisterRequest{Name: "Existing User", Email: "existing@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("EmailExists", mock.Anything, "existing@example.com").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, testJWTService(), zerolog.Nop())
			resp, err := service.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
				// Nothing may be persisted on conflict
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.Equal(t, tt.req.Email, resp.Email)
				assert.Equal(t, string(models.RoleRegular), resp.Role)
				assert.NotEmpty(t, resp.Token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	tests := []struct {
		name          string
		req           *dto.LoginRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful login",
			req:  &dto.LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{
					ID:       1,
					Email:    "test@example.com",
					Password: string(hashedPassword),
					Role:     models.RoleRegular,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "padded email is trimmed like registration",
			req:  &dto.LoginRequest{Email: "  test@example.com  ", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{
					ID:       1,
					Email:    "test@example.com",
					Password: string(hashedPassword),
					Role:     models.RoleRegular,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "wrong password",
			req:  &dto.LoginRequest{Email: "test@example.com", Password: "not-the-password"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{
					ID:       1,
					Email:    "test@example.com",
					Password: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			req:  &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, testJWTService(), zerolog.Nop())
			resp, err := service.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.Equal(t, strings.TrimSpace(tt.req.Email), resp.Email)
				assert.NotEmpty(t, resp.Token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
