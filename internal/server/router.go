package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins    []string
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	QuizHandler       *handlers.QuizHandler
	SubmissionHandler *handlers.SubmissionHandler
	ReviewHandler     *handlers.ReviewHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/me", cfg.UserHandler.GetMe)
	// Quizzes
	protected.POST("/quizzes", cfg.QuizHandler.Create)
	protected.GET("/quizzes", cfg.QuizHandler.List)
	protected.GET("/quizzes/:id", cfg.QuizHandler.Get)
	protected.DELETE("/quizzes/:id", cfg.QuizHandler.Delete)
	protected.GET("/quizzes/:id/stats", cfg.SubmissionHandler.QuizStats)
	// Submissions
	protected.POST("/submissions", cfg.SubmissionHandler.Submit)
	protected.GET("/submissions", cfg.SubmissionHandler.List)
	protected.GET("/submissions/:id", cfg.SubmissionHandler.Get)
	// Review schedules
	protected.GET("/reviews/due", cfg.ReviewHandler.Due)
	protected.GET("/reviews/stats", cfg.ReviewHandler.Statistics)
	protected.GET("/reviews", cfg.ReviewHandler.List)
	protected.PATCH("/reviews/:id", cfg.ReviewHandler.Update)
	protected.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
	// Analytics
	protected.GET("/analytics/contributions", cfg.AnalyticsHandler.Contributions)
	protected.GET("/analytics/streaks", cfg.AnalyticsHandler.Streaks)
	protected.GET("/analytics/summary/:year", cfg.AnalyticsHandler.YearSummary)

	return router
}
