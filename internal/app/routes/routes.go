package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/middleway/middleway/internal/app/auth"
	"github.com/middleway/middleway/internal/app/controllers"
	"github.com/middleway/middleway/internal/app/models/dto"
	"github.com/middleway/middleway/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	meetupController *controllers.MeetupController,
	mapController *controllers.MapController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public user routes ---
	users := api.Group("/users")
	{
		users.POST("", authController.Register)
		users.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	usersProtected := users.Group("")
	usersProtected.Use(authMiddleware.JWTAuth())
	{
		usersProtected.GET("/profile", userController.GetProfile)
		usersProtected.PUT("/profile", userController.UpdateProfile)
		usersProtected.GET("/all", userController.GetAllUsers)
		usersProtected.POST("/lookup", userController.LookupUsers)

		// Admin-only management routes
		usersAdminProtected := usersProtected.Group("")
		usersAdminProtected.Use(authMiddleware.RequireCapability(auth.CapAdmin))
		{
			usersAdminProtected.GET("/admin/all-users", userController.GetAllUsersForAdmin)
			usersAdminProtected.PUT("/promote/:id", userController.PromoteUser)
		}
	}

	meetups := api.Group("/meetups")
	meetups.Use(authMiddleware.JWTAuth())
	{
		meetups.POST("", meetupController.CreateMeetup)
		meetups.GET("", meetupController.GetMeetups)

		// Moderation listing sits above /:id so the router does not
		// treat "moderator" as a meetup ID.
		meetupsModeratorProtected := meetups.Group("/moderator")
		meetupsModeratorProtected.Use(authMiddleware.RequireCapability(auth.CapModeration))
		{
			meetupsModeratorProtected.GET("", meetupController.GetMeetupsForModerators)
		}

		meetups.GET("/:id", meetupController.GetMeetupByID)
		meetups.PUT("/:id", meetupController.UpdateMeetup)
		meetups.DELETE("/:id", meetupController.DeleteMeetup)
		meetups.PUT("/:id/participants/:userId", meetupController.UpdateParticipantStatus)
	}

	// Place search is open: the client calls it from the location picker
	// before the user is signed in.
	mapGroup := api.Group("/map")
	{
		mapGroup.GET("/search", mapController.SearchPlaces)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
