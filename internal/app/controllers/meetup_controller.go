package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/app/services"
	"github.com/middleway/middleway/internal/middleware"
)

// MeetupController handles meetup CRUD and participant status operations
type MeetupController struct {
	meetupService services.MeetupService
	logger        zerolog.Logger
}

// NewMeetupController creates a new MeetupController
func NewMeetupController(meetupService services.MeetupService, logger zerolog.Logger) *MeetupController {
	return &MeetupController{
		meetupService: meetupService,
		logger:        logger,
	}
}

// CreateMeetup creates a meetup with the caller as creator
// @Summary Create a meetup
// @Description Resolves invitee emails to registered users and persists the meetup. Fails listing the missing emails if any invitee is unregistered.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMeetupRequest true "Meetup data"
// @Success 201 {object} dto.APIResponse{data=dto.MeetupResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty participants or unresolved emails"
// @Router /meetups [post]
func (c *MeetupController) CreateMeetup(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateMeetupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	meetup, err := c.meetupService.Create(ctx.Request.Context(), callerID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("callerID", callerID).Msg("Failed to create meetup")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(meetup))
}

// GetMeetups lists the meetups the caller created or was invited to
// @Summary List own meetups
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeetupListResponse}
// @Router /meetups [get]
func (c *MeetupController) GetMeetups(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	meetups, err := c.meetupService.ListForUser(ctx.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetups))
}

// GetMeetupByID fetches a single meetup
// @Summary Get meetup by ID
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meetup ID"
// @Success 200 {object} dto.APIResponse{data=dto.MeetupResponse}
// @Failure 404 {object} dto.ErrorResponse "Meetup not found"
// @Router /meetups/{id} [get]
func (c *MeetupController) GetMeetupByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	meetup, err := c.meetupService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetup))
}

// UpdateMeetup applies a partial update; creator only
// @Summary Update a meetup
// @Description Applies only the provided fields. Unknown keys are rejected. Only the creator may update.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meetup ID"
// @Param request body dto.UpdateMeetupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MeetupResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown field or invalid status"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Meetup not found"
// @Router /meetups/{id} [put]
func (c *MeetupController) UpdateMeetup(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Strict decoding: only the enumerated updatable fields are accepted,
	// anything else fails the request instead of being silently dropped.
	var req dto.UpdateMeetupRequest
	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	meetup, err := c.meetupService.Update(ctx.Request.Context(), id, callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetup))
}

// DeleteMeetup removes a meetup; creator only
// @Summary Delete a meetup
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meetup ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Meetup not found"
// @Router /meetups/{id} [delete]
func (c *MeetupController) DeleteMeetup(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.meetupService.Delete(ctx.Request.Context(), id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"message": "Meetup removed"}))
}

// UpdateParticipantStatus overwrites a participant's response status. The
// caller may only change their own entry.
// @Summary Set participant status
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meetup ID"
// @Param userId path int true "Participant user ID"
// @Param request body dto.ParticipantStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.MeetupResponse}
// @Failure 403 {object} dto.ErrorResponse "Not your participant entry"
// @Failure 404 {object} dto.ErrorResponse "Meetup or participant not found"
// @Router /meetups/{id}/participants/{userId} [put]
func (c *MeetupController) UpdateParticipantStatus(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if userID != callerID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Participants may only change their own status")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ParticipantStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	meetup, err := c.meetupService.SetParticipantStatus(ctx.Request.Context(), id, userID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetup))
}

// GetMeetupsForModerators lists every meetup without an ownership filter
// @Summary List all meetups (moderation)
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeetupListResponse}
// @Failure 403 {object} dto.ErrorResponse "Moderators only"
// @Router /meetups/moderator [get]
func (c *MeetupController) GetMeetupsForModerators(ctx *gin.Context) {
	meetups, err := c.meetupService.ListAllForModerators(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetups))
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
