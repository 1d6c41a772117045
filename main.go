package main

import (
	"log"

	"quizevent/config"
	"quizevent/handlers"
	"quizevent/middleware"
	"quizevent/models"
	"quizevent/routes"
	"quizevent/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Submission{},
		&models.AnswerRecord{},
		&models.Event{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize results hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	submissionService := services.NewSubmissionService(db, hub)
	eventService := services.NewEventService(db)
	flashService := services.NewFlashService(redisClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	eventHandler := handlers.NewEventHandler(eventService)
	webHandler := handlers.NewWebHandler(submissionService, flashService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, submissionHandler, eventHandler, webHandler, hub, quizService, authService)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
