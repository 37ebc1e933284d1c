package app

import (
	httpx "github.com/ShaikhHussain06/Skill-sculptor/internal/http"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		QueryHandler:     handlers.Query,
		RoadmapHandler:   handlers.Roadmap,
		DashboardHandler: handlers.Dashboard,
		HealthHandler:    handlers.Health,
	})
}
