package routes

import (
	"net/http"
	"strconv"

	"quizevent/handlers"
	"quizevent/middleware"
	"quizevent/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	submissionHandler *handlers.SubmissionHandler,
	eventHandler *handlers.EventHandler,
	webHandler *handlers.WebHandler,
	hub *services.Hub,
	quizService *services.QuizService,
	authService *services.AuthService,
) {
	// JSON API
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired(authService))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("", quizHandler.ListQuizzes)
				quizzes.POST("", quizHandler.CreateQuiz)
				quizzes.GET("/:id", quizHandler.GetQuizByID)
				quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			}

			protected.POST("/questions", quizHandler.CreateQuestion)
			protected.POST("/answers", quizHandler.CreateAnswer)

			submissions := protected.Group("/submissions")
			{
				submissions.POST("", submissionHandler.SubmitQuiz)
				submissions.GET("", submissionHandler.ListMySubmissions)
				submissions.GET("/:id", submissionHandler.GetSubmission)
			}

			events := protected.Group("/events")
			{
				events.GET("", eventHandler.ListUpcoming)
				events.POST("", eventHandler.CreateEvent)
			}
		}
	}

	// Form adapter: same core calls, browser protocol (redirect + flash)
	web := router.Group("/")
	web.Use(middleware.AuthRequired(authService))
	{
		web.GET("/quizzes/:id/take", webHandler.TakeQuiz)
		web.POST("/quizzes/:id/submit", webHandler.SubmitQuiz)
		web.GET("/flash", webHandler.Flash)
	}

	// Live submission results feed per quiz
	router.GET("/ws/quizzes/:id/results", func(c *gin.Context) {
		quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
			return
		}

		if _, err := quizService.GetQuizByID(uint(quizID)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Quiz not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn, uint(quizID))
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
