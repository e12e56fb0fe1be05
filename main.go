package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gymbuddy-api/config"
	"gymbuddy-api/database"
	"gymbuddy-api/jobs"
	"gymbuddy-api/middleware"
	"gymbuddy-api/routes"
	"gymbuddy-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger for services and jobs
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed the exercise catalog
	if err := database.SeedExercises(db); err != nil {
		log.Printf("Warning: Failed to seed exercise catalog: %v", err)
	}

	// Catalog cache
	cache, err := database.InitializeRedis(cfg)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	// Email service and code cleanup job
	emailService := services.NewEmailService(cfg)
	cleanupJob := jobs.NewVerificationCleanupJob(emailService, 10*time.Minute, logger)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Live chat fan-out
	chatHub := services.NewChatHub(logger)

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))

	routes.SetupRoutes(router, db, cache, cfg, emailService, chatHub, logger)

	logger.Info("starting GymBuddy API server", zap.String("port", cfg.Port))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
