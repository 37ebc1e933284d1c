package app

import (
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/services"
)

type Services struct {
	Resources resources.Usecases
	Events    services.EventPublisher
	Roadmap   services.RoadmapService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	planner := resources.New(resources.UsecasesDeps{
		Log:       log,
		Providers: clients.Providers,
		Timeout:   cfg.ProviderTimeout,
		Metrics:   metrics,
	})
	events := services.NewEventPublisher(log, clients.EventBus, metrics)

	return Services{
		Resources: planner,
		Events:    events,
		Roadmap:   services.NewRoadmapService(db, log, repos.Roadmap, repos.Dashboard, planner, events, metrics),
		Dashboard: services.NewDashboardService(db, log, repos.Roadmap, repos.Dashboard, events),
	}
}
