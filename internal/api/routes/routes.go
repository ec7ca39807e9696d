package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/uppi/backend/internal/api/handlers"
	"github.com/uppi/backend/internal/api/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Auth endpoints, no token required
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/refresh", h.Refresh)
		}

		// WebSocket connection, token travels as a query parameter
		v1.GET("/ws", h.HandleWebSocket)

		// Everything below requires a bearer token
		authed := v1.Group("")
		authed.Use(middleware.AuthRequired(h.Tokens))
		{
			// Profile endpoints
			profiles := authed.Group("/profiles")
			{
				profiles.GET("/me", h.GetMe)
				profiles.PATCH("/me", h.UpdateMe)
				profiles.GET("/:id", h.GetProfile)
				profiles.GET("/:id/ratings", h.ListUserRatings)
			}

			// Driver endpoints
			drivers := authed.Group("/drivers")
			{
				drivers.POST("", h.RegisterDriver)
				drivers.GET("/me", h.GetDriverProfile)
				drivers.PUT("/me/availability", h.SetAvailability)
				drivers.PUT("/me/location", h.UpdateDriverLocation)
				drivers.GET("/nearby", h.NearbyDrivers)
			}

			// Ride and offer endpoints
			rides := authed.Group("/rides")
			{
				rides.POST("", h.CreateRide)
				rides.GET("", h.ListMyRides)
				rides.GET("/open", h.ListOpenRides)
				rides.GET("/:id", h.GetRide)
				rides.POST("/:id/cancel", h.CancelRide)
				rides.POST("/:id/start", h.StartRide)
				rides.POST("/:id/complete", h.CompleteRide)
				rides.POST("/:id/offers", h.SubmitOffer)
				rides.GET("/:id/offers", h.ListOffers)
				rides.POST("/:id/offers/:offer_id/accept", h.AcceptOffer)
				rides.GET("/:id/rating", h.GetMyRideRating)
			}

			// Rating endpoints
			authed.POST("/ratings", h.SubmitRating)

			// Wallet endpoints
			wallet := authed.Group("/wallet")
			{
				wallet.GET("/balance", h.GetBalance)
				wallet.GET("/transactions", h.GetWalletHistory)
				wallet.POST("/deposit", h.Deposit)
				wallet.POST("/withdraw", h.Withdraw)
			}

			// Notification endpoints
			notifications := authed.Group("/notifications")
			{
				notifications.GET("", h.ListNotifications)
				notifications.POST("/:id/read", h.MarkNotificationRead)
				notifications.POST("/read-all", h.MarkAllNotificationsRead)
			}

			// Favorite place endpoints
			favorites := authed.Group("/favorites")
			{
				favorites.POST("", h.CreateFavorite)
				favorites.GET("", h.ListFavorites)
				favorites.DELETE("/:id", h.DeleteFavorite)
			}
		}
	}
}
