package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/app/services"
	"github.com/middleway/middleway/internal/middleware"
	"github.com/middleway/middleway/internal/pkg/auth"
)

// UserController handles profile, directory and admin operations
type UserController struct {
	userService services.UserService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, jwtService *auth.JWTService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// GetProfile returns the caller's own profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UpdateProfile applies a partial update to the caller's profile and
// re-issues the access token, matching what the web client expects.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, err := c.jwtService.GenerateToken(user)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", callerID).Msg("Failed to re-issue token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AuthResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Role:              string(user.Role),
		Location:          user.Location,
		PreferredDistance: user.PreferredDistance,
		Preferences:       user.Preferences,
		Token:             token,
	}))
}

// GetAllUsers lists every user except the caller
// @Summary List other users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary}
// @Router /users/all [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	users, err := c.userService.ListOthers(ctx.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// LookupUsers returns summaries for the requested user IDs
// @Summary Look up users by ID
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LookupUsersRequest true "User IDs"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary}
// @Router /users/lookup [post]
func (c *UserController) LookupUsers(ctx *gin.Context) {
	var req dto.LookupUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	users, err := c.userService.LookupByIDs(ctx.Request.Context(), req.UserIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// GetAllUsersForAdmin returns the full user listing
// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminUserResponse}
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /users/admin/all-users [get]
func (c *UserController) GetAllUsersForAdmin(ctx *gin.Context) {
	users, err := c.userService.ListAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// PromoteUser sets the target user's role
// @Summary Set a user's role (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Param request body dto.PromoteUserRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/promote/{id} [put]
func (c *UserController) PromoteUser(ctx *gin.Context) {
	targetID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.PromoteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.userService.PromoteUser(ctx.Request.Context(), targetID, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("targetID", targetID).Str("role", req.Role).Msg("Role set by admin")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
