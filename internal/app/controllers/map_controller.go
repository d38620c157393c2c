package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/pkg/geocode"
)

// MapController proxies place search queries to the geocoding provider
type MapController struct {
	geocoder *geocode.Client
	logger   zerolog.Logger
}

// NewMapController creates a new MapController
func NewMapController(geocoder *geocode.Client, logger zerolog.Logger) *MapController {
	return &MapController{
		geocoder: geocoder,
		logger:   logger,
	}
}

// SearchPlaces forwards a free-text query to the geocoding provider and
// returns its result array untouched.
// @Summary Search places
// @Tags map
// @Produce json
// @Param q query string true "Free-text place query"
// @Success 200 {array} object
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Failure 500 {object} dto.ErrorResponse "Provider unreachable"
// @Router /map/search [get]
func (c *MapController) SearchPlaces(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Query parameter 'q' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.geocoder.Search(ctx.Request.Context(), query)
	if err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("Geocoding request failed")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Failed to search places")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.Data(http.StatusOK, "application/json", results)
}
