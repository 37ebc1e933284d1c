package app

import (
	httpH "github.com/ShaikhHussain06/Skill-sculptor/internal/http/handlers"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Query     *httpH.QueryHandler
	Roadmap   *httpH.RoadmapHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Query:     httpH.NewQueryHandler(log, services.Roadmap),
		Roadmap:   httpH.NewRoadmapHandler(log, services.Roadmap),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
	}
}
