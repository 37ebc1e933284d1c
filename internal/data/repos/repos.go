package repos

import (
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos/roadmap"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type RoadmapRepo = roadmap.RoadmapRepo
type DashboardRepo = roadmap.DashboardRepo
type DashboardMutation = roadmap.DashboardMutation

var ErrVersionConflict = roadmap.ErrVersionConflict

func NewRoadmapRepo(db *gorm.DB, log *logger.Logger) RoadmapRepo {
	return roadmap.NewRoadmapRepo(db, log)
}

func NewDashboardRepo(db *gorm.DB, log *logger.Logger) DashboardRepo {
	return roadmap.NewDashboardRepo(db, log)
}
