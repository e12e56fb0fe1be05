package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/config"
	"gymbuddy-api/controllers"
	"gymbuddy-api/middleware"
	"gymbuddy-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cache *redis.Client, cfg *config.Config, emailService *services.EmailService, chatHub *services.ChatHub, logger *zap.Logger) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	exerciseController := controllers.NewExerciseController(db, cache, logger)
	meetupController := controllers.NewMeetupController(db)
	connectionController := controllers.NewConnectionController(db, logger)
	chatController := controllers.NewChatController(db, chatHub, logger)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/resend-verification", authController.ResendVerification)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		// Exercise catalog and daily logs
		protected.GET("/exercises", exerciseController.GetCatalog)
		logs := protected.Group("/logs")
		{
			logs.GET("/", exerciseController.ListLogs)
			logs.GET("/:date", exerciseController.GetLog)
			logs.PUT("/:date", exerciseController.SaveLog)
		}
		protected.GET("/stats/:exercise", exerciseController.GetExerciseStats)

		// Meetup routes
		meetup := protected.Group("/meetup")
		{
			meetup.PUT("/gym", meetupController.UpdateGymLocation)
			meetup.GET("/nearby", meetupController.GetNearbyUsers)
		}

		// Connection workflow routes
		connections := protected.Group("/connections")
		{
			connections.POST("/requests/:user_id", connectionController.SendRequest)
			connections.POST("/requests/:user_id/accept", connectionController.AcceptRequest)
			connections.POST("/requests/:user_id/decline", connectionController.DeclineRequest)
			connections.GET("/requests", connectionController.GetPendingRequests)
			connections.GET("/requests/sent", connectionController.GetSentRequests)
			connections.GET("/status/:user_id", connectionController.GetStatus)
			connections.GET("/friends", connectionController.GetFriends)
		}

		// Chat routes
		chat := protected.Group("/chat")
		{
			chat.POST("/:friend_id/messages", chatController.SendMessage)
			chat.GET("/:friend_id/messages", chatController.GetMessages)
			chat.GET("/:friend_id/stream", chatController.StreamMessages)
		}
	}
}
