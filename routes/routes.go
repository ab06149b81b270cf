package routes

import (
	"net/http"
	"time"

	"proconecta/handlers"
	"proconecta/middleware"
	"proconecta/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.UserHandler.RegisterHandler)
		api.POST("/signin", hb.UserHandler.SignInHandler)

		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/signout", hb.UserHandler.SignOutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.UserHandler.GetMeHandler)
		api.PUT("/me", hb.UserHandler.UpdateProfileHandler)
		api.PUT("/me/provider-profile", hb.UserHandler.CompleteProviderProfileHandler)
		api.PUT("/me/fcm-token", hb.UserHandler.UpdateFCMTokenHandler)
		api.POST("/me/photo", hb.StorageHandler.UploadProfilePhotoHandler)
		api.GET("/username/:username", hb.UserHandler.GetUserByUsernameHandler)
		api.GET("/:id/ratings", hb.RatingHandler.ListHandler)
	}

	providers := r.Group("/api/providers")
	{
		providers.Use(middleware.JWTAuthMiddleware())
		providers.GET("", hb.UserHandler.ListProvidersHandler)
	}
}

// RegisterServiceRoutes registers the request lifecycle, chat and rating
// endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.ServiceHandler.CreateHandler)
		api.GET("", hb.ServiceHandler.ListMineHandler)
		api.GET("/:id", hb.ServiceHandler.GetHandler)

		api.POST("/:id/propose", hb.ServiceHandler.ProposeValueHandler)
		api.POST("/:id/accept-proposal", hb.ServiceHandler.AcceptProposalHandler)
		api.POST("/:id/accept", hb.ServiceHandler.AcceptDemandHandler)
		api.POST("/:id/start", hb.ServiceHandler.StartHandler)
		api.POST("/:id/complete", hb.ServiceHandler.CompleteHandler)
		api.POST("/:id/cancel", hb.ServiceHandler.CancelHandler)

		api.POST("/:id/rating", hb.RatingHandler.SubmitHandler)
		api.POST("/:id/messages", hb.MessageHandler.AppendHandler)
		api.GET("/:id/messages", hb.MessageHandler.ListHandler)
		api.POST("/:id/photos", hb.StorageHandler.UploadServicePhotoHandler)
	}
}

// RegisterDiscoveryRoutes registers the nearby-demand search.
func RegisterDiscoveryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/demands")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.DiscoveryHandler.FindDemandsHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.NotificationHandler.ListHandler)
		api.PUT("/:id/read", hb.NotificationHandler.MarkReadHandler)
	}
}

// RegisterStorageRoutes registers photo URL resolution.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/photos")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/*ref", hb.StorageHandler.PhotoURLHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm PRO Conecta",
			"backends": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterDiscoveryRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
