package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/pathly-backend/internal/db"
	"github.com/yungbote/pathly-backend/internal/handlers"
	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/middleware"
	"github.com/yungbote/pathly-backend/internal/observability"
	"github.com/yungbote/pathly-backend/internal/repos"
	"github.com/yungbote/pathly-backend/internal/server"
	"github.com/yungbote/pathly-backend/internal/services"
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

	ctx := context.Background()

	// Tracing
	if shutdown := observability.InitOTel(ctx, log); shutdown != nil {
		defer func() { _ = shutdown(context.Background()) }()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	skillRepo := repos.NewSkillRepo(thePG, log)
	roadmapRepo := repos.NewRoadmapRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	geminiClient, err := services.NewGeminiClient(ctx, log)
	if err != nil {
		log.Error("Could not init GeminiClient", "error", err)
		os.Exit(1)
	}
	geminiService := services.NewGeminiService(log, geminiClient)
	skillMapService := services.NewSkillMapService(thePG, log, skillRepo, roadmapRepo, geminiService)

	// Handlers
	log.Info("Setting up handlers from main...")
	generateHandler := handlers.NewGenerateHandler(log, skillMapService)
	skillHandler := handlers.NewSkillHandler(log, skillMapService)

	// Middleware
	log.Info("Setting up middleware from main...")
	rateLimiter := middleware.NewRateLimiter(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		GenerateHandler: generateHandler,
		SkillHandler:    skillHandler,
		RateLimiter:     rateLimiter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:" + port
	}
	log.Info("Server is running", "url", backendURL)
	log.Info("Gemini API", "endpoint", backendURL+"/api/gemini/generate-map")
	log.Info("Skills API", "endpoint", backendURL+"/api/skills")
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
