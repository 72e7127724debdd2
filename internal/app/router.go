package app

import (
	"job_board_backend/docs"
	"job_board_backend/internal/config"
	"job_board_backend/internal/middleware"
	"job_board_backend/internal/model"
	"job_board_backend/pkg/monitoring"
	"job_board_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerCandidateRoutes(authGroup, c, cfg)
		a.registerRecruiterRoutes(authGroup, c)
	}
}

func (a *App) registerCandidateRoutes(group *gin.RouterGroup, c *controllers, cfg *config.Config) {
	group.GET("/assessments", c.assessment.List)
	group.GET("/assessments/:id", c.assessment.Get)

	// Grading writes a result row per call, so it gets its own per-user budget.
	submitLimit := security.RateLimiter(cfg.RateLimit.SubmitPerMinute, time.Minute, security.ByUser)
	group.POST("/assessments/:id/submit", submitLimit, c.result.Submit)

	self := group.Group("/users/:userId")
	self.Use(middleware.SelfOrAdmin("userId"))
	{
		self.GET("/results", c.result.ListByUser)
		self.GET("/results/:assessmentId", c.result.Latest)
	}
}

func (a *App) registerRecruiterRoutes(group *gin.RouterGroup, c *controllers) {
	authoring := group.Group("/assessments")
	authoring.Use(middleware.RoleMiddleware(model.Recruiter))
	{
		authoring.POST("", c.assessment.Create)
		authoring.PUT("/:id", c.assessment.Update)
		authoring.DELETE("/:id", c.assessment.Delete)
		authoring.POST("/:id/questions", c.assessment.AddQuestion)
		authoring.DELETE("/:id/questions/:questionId", c.assessment.DeleteQuestion)
		authoring.POST("/:id/import", c.assessment.Import)
		authoring.GET("/:id/results", c.result.ListByAssessment)
	}
}
