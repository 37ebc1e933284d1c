package app

import (
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type Repos struct {
	Roadmap   repos.RoadmapRepo
	Dashboard repos.DashboardRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Roadmap:   repos.NewRoadmapRepo(db, log),
		Dashboard: repos.NewDashboardRepo(db, log),
	}
}
