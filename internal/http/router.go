package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/ShaikhHussain06/Skill-sculptor/internal/http/handlers"
	httpMW "github.com/ShaikhHussain06/Skill-sculptor/internal/http/middleware"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	QueryHandler     *httpH.QueryHandler
	RoadmapHandler   *httpH.RoadmapHandler
	DashboardHandler *httpH.DashboardHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/api")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Query form
		if cfg.QueryHandler != nil {
			protected.POST("/query", cfg.QueryHandler.Submit)
		}

		// Roadmaps
		if cfg.RoadmapHandler != nil {
			protected.POST("/roadmap", cfg.RoadmapHandler.CreateRoadmap)
			protected.GET("/roadmap/user/:userId", cfg.RoadmapHandler.GetLatestForUser)
			protected.GET("/roadmap/user/:userId/all", cfg.RoadmapHandler.ListForUser)
			protected.GET("/roadmap/:id", cfg.RoadmapHandler.GetRoadmap)
			protected.PUT("/roadmap/:id", cfg.RoadmapHandler.UpdateRoadmap)
			protected.PUT("/roadmap/:id/step/:stepIndex/complete", cfg.RoadmapHandler.CompleteStep)
			protected.DELETE("/roadmap/:id", cfg.RoadmapHandler.DeleteRoadmap)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard/:userId", cfg.DashboardHandler.GetDashboard)
			protected.POST("/dashboard", cfg.DashboardHandler.EnsureDashboard)
			protected.PUT("/dashboard/:userId", cfg.DashboardHandler.UpdateDashboard)
		}
	}

	return r
}
