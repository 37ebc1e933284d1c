package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos"
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

// DashboardView is the read shape of GET /api/dashboard/:userId.
type DashboardView struct {
	HasRoadmap bool
	Dashboard  *types.Dashboard
}

type EnsureDashboardOutput struct {
	Dashboard *types.Dashboard
	Created   bool
}

type DashboardService interface {
	// GetDashboard never creates anything. Users with roadmaps but no stored
	// dashboard get an unsaved empty one.
	GetDashboard(ctx context.Context, userID string) (*DashboardView, error)
	// EnsureDashboard creates the dashboard if missing and links roadmapID
	// (or, on creation without one, the user's latest roadmap).
	EnsureDashboard(ctx context.Context, userID string, roadmapID *uuid.UUID) (*EnsureDashboardOutput, error)
	UpdateStreak(ctx context.Context, userID string, streak int) (*types.Dashboard, error)
}

type dashboardService struct {
	db         *gorm.DB
	log        *logger.Logger
	roadmaps   repos.RoadmapRepo
	dashboards repos.DashboardRepo
	events     EventPublisher
	now        func() time.Time
}

func NewDashboardService(db *gorm.DB, log *logger.Logger, roadmaps repos.RoadmapRepo, dashboards repos.DashboardRepo, events EventPublisher) DashboardService {
	return &dashboardService{
		db:         db,
		log:        log.With("service", "DashboardService"),
		roadmaps:   roadmaps,
		dashboards: dashboards,
		events:     events,
		now:        time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*DashboardView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.InvalidArgument("user id is required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	has, err := s.roadmaps.ExistsForUser(dbc, userID)
	if err != nil {
		return nil, apierr.Internal("check roadmaps", err)
	}
	if !has {
		return &DashboardView{HasRoadmap: false}, nil
	}

	d, err := s.dashboards.GetByUserID(dbc, userID)
	if err != nil {
		return nil, apierr.Internal("load dashboard", err)
	}
	if d == nil {
		d = types.NewDashboard(userID, s.now())
	}
	return &DashboardView{HasRoadmap: true, Dashboard: d}, nil
}

func (s *dashboardService) EnsureDashboard(ctx context.Context, userID string, roadmapID *uuid.UUID) (*EnsureDashboardOutput, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.InvalidArgument("user id is required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := s.dashboards.GetByUserID(dbc, userID)
	if err != nil {
		return nil, apierr.Internal("load dashboard", err)
	}
	created := existing == nil

	link := uuid.Nil
	if roadmapID != nil {
		link = *roadmapID
	} else if created {
		latest, err := s.roadmaps.LatestByUser(dbc, userID)
		if err != nil {
			return nil, apierr.Internal("load latest roadmap", err)
		}
		if latest != nil {
			link = latest.ID
		}
	}

	var d *types.Dashboard
	if link != uuid.Nil {
		d, err = s.dashboards.LinkRoadmap(dbc, userID, link)
	} else {
		d, err = s.dashboards.Ensure(dbc, userID)
	}
	if errors.Is(err, repos.ErrVersionConflict) {
		return nil, apierr.Conflict("dashboard for %s was modified concurrently", userID)
	}
	if err != nil {
		return nil, apierr.Internal("ensure dashboard", err)
	}
	if created {
		s.log.Info("dashboard created", "user_id", userID)
	}
	return &EnsureDashboardOutput{Dashboard: d, Created: created}, nil
}

func (s *dashboardService) UpdateStreak(ctx context.Context, userID string, streak int) (*types.Dashboard, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.InvalidArgument("user id is required")
	}
	if streak < 0 {
		return nil, apierr.InvalidArgument("currentStreak must be non-negative")
	}
	d, err := s.dashboards.Mutate(dbctx.Context{Ctx: ctx}, userID, func(d *types.Dashboard) (bool, error) {
		if d.CurrentStreak == streak {
			return false, nil
		}
		d.CurrentStreak = streak
		return true, nil
	})
	if errors.Is(err, repos.ErrVersionConflict) {
		return nil, apierr.Conflict("dashboard for %s was modified concurrently", userID)
	}
	if err != nil {
		return nil, apierr.Internal("update dashboard", err)
	}
	s.events.Publish(ctx, realtime.NewEvent(realtime.EventDashboardUpdated, userID, "", map[string]any{"currentStreak": streak}))
	return d, nil
}
