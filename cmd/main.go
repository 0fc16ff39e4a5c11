package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quizforge/quizforge-backend/internal/db"
	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/server"
	"github.com/quizforge/quizforge-backend/internal/services"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)
	allowedOrigins := strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")

	// Database
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	quizRepo := repos.NewQuizRepo(gdb, log)
	quizAttemptRepo := repos.NewQuizAttemptRepo(gdb, log)
	reviewScheduleRepo := repos.NewReviewScheduleRepo(gdb, log)

	// Services
	log.Info("Setting up Services from main...")
	accessTTL := time.Duration(accessTokenTTL) * time.Second
	refreshTTL := time.Duration(refreshTokenTTL) * time.Second
	authService := services.NewAuthService(gdb, log, userRepo, userTokenRepo, jwtSecretKey, accessTTL, refreshTTL)
	userService := services.NewUserService(log, userRepo)
	geminiClient, err := services.NewGeminiClient(log)
	if err != nil {
		log.Warn("Quiz generation disabled", "error", err)
		geminiClient = nil
	}
	quizService := services.NewQuizService(gdb, log, quizRepo, geminiClient)
	reviewService := services.NewReviewScheduleService(gdb, log, reviewScheduleRepo)
	submissionService := services.NewSubmissionService(gdb, log, quizRepo, quizAttemptRepo, userRepo, reviewService)
	analyticsService := services.NewAnalyticsService(gdb, log, quizAttemptRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, accessTTL)
	userHandler := handlers.NewUserHandler(userService)
	quizHandler := handlers.NewQuizHandler(quizService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:    allowedOrigins,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		QuizHandler:       quizHandler,
		SubmissionHandler: submissionHandler,
		ReviewHandler:     reviewHandler,
		AnalyticsHandler:  analyticsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
