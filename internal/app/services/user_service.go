package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/app/repositories"
	"github.com/middleway/middleway/internal/pkg/apperrors"
	"github.com/middleway/middleway/internal/pkg/auth"
)

// UserService defines the interface for user profile and directory operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	ListOthers(ctx context.Context, userID int64) ([]dto.UserSummary, error)
	LookupByIDs(ctx context.Context, userIDs []int64) ([]dto.UserSummary, error)
	ListAll(ctx context.Context) ([]dto.AdminUserResponse, error)
	PromoteUser(ctx context.Context, targetUserID int64, role string) (*dto.ProfileResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the user's own non-password fields
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return profileResponse(user), nil
}

// UpdateProfile applies only the fields present in the request. A new password
// is re-hashed before storage. Returns the updated user so the controller can
// re-issue a token.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.PreferredDistance != nil {
		user.PreferredDistance = *req.PreferredDistance
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")

	return user, nil
}

// ListOthers returns summaries for every user except the caller
func (s *userServiceImpl) ListOthers(ctx context.Context, userID int64) ([]dto.UserSummary, error) {
	users, err := s.userRepo.GetAllExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	return summaries(users), nil
}

// LookupByIDs returns summaries for the matching user IDs. Unknown IDs are
// silently skipped.
func (s *userServiceImpl) LookupByIDs(ctx context.Context, userIDs []int64) ([]dto.UserSummary, error) {
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return summaries(users), nil
}

// ListAll returns the full user listing for administrators
func (s *userServiceImpl) ListAll(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.AdminUserResponse{
			ID:                u.ID,
			Name:              u.Name,
			Email:             u.Email,
			Role:              string(u.Role),
			Location:          u.Location,
			PreferredDistance: u.PreferredDistance,
			Preferences:       u.Preferences,
		})
	}

	return responses, nil
}

// PromoteUser idempotently sets the target's role. Any of the three roles is
// accepted, which also serves as the demotion path.
func (s *userServiceImpl) PromoteUser(ctx context.Context, targetUserID int64, role string) (*dto.ProfileResponse, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	newRole := models.Role(role)
	if user.Role != newRole {
		if err := s.userRepo.UpdateRole(ctx, targetUserID, newRole); err != nil {
			return nil, err
		}
		user.Role = newRole
		s.logger.Info().Int64("userID", targetUserID).Str("role", role).Msg("User role changed")
	}

	return profileResponse(user), nil
}

func profileResponse(user *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Role:              string(user.Role),
		Location:          user.Location,
		PreferredDistance: user.PreferredDistance,
		Preferences:       user.Preferences,
	}
}

func summaries(users []*models.User) []dto.UserSummary {
	result := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		result = append(result, dto.UserSummary{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Location: u.Location,
		})
	}
	return result
}
