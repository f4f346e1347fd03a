package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/pathly-backend/internal/handlers"
	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/middleware"
)

type RouterConfig struct {
	Log             *logger.Logger
	GenerateHandler *handlers.GenerateHandler
	SkillHandler    *handlers.SkillHandler
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(otelgin.Middleware("pathly-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/", handlers.Root)
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.RateLimiter.General())
	{
		gemini := api.Group("/gemini")
		gemini.POST("/generate-map", cfg.RateLimiter.AIGeneration(), cfg.GenerateHandler.GenerateMap)

		skills := api.Group("/skills")
		skills.GET("", cfg.SkillHandler.ListSkills)
		skills.GET("/roadmap/:skillId", cfg.SkillHandler.GetRoadmapBySkill)
	}

	router.NoRoute(middleware.NotFoundHandler)

	return router
}
