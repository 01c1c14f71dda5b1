// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"socialnet-api/config"
	"socialnet-api/database"
	"socialnet-api/jobs"
	"socialnet-api/routes"
	"socialnet-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with an admin account (development convenience)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	sessionService := services.NewSessionService(db, cfg.SessionLifetime)
	emailService := services.NewEmailService(cfg)

	cleanupJob := jobs.NewSessionCleanupJob(sessionService, time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Create router
	router := gin.Default()

	router.Use(routes.SetupCORS(cfg.CORSOrigin))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, sessionService, emailService)

	log.Printf("Starting SocialNet API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
