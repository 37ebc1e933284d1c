package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos"
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

// ResourcePlanner produces per-step resource sets for a skill and level.
type ResourcePlanner interface {
	Plan(ctx context.Context, in resources.PlanInput) resources.PlanOutput
}

type BuildRoadmapInput struct {
	UserID string
	Skill  string
	Level  string
	Goal   string
}

type BuildRoadmapOutput struct {
	Roadmap   *types.Roadmap
	Dashboard *types.Dashboard
}

// UpdateRoadmapInput edits roadmap metadata. Nil fields are left alone.
type UpdateRoadmapInput struct {
	RoadmapID   uuid.UUID
	RequesterID string
	Skill       *string
	Level       *string
	Goal        *string
}

type CompleteStepInput struct {
	RoadmapID uuid.UUID
	StepIndex int
	// RequesterID, when set, must own the roadmap.
	RequesterID string
}

type CompleteStepOutput struct {
	Roadmap       *types.Roadmap
	CompletedStep types.Step
	// Entry is the ledger record written for this call; nil when the step
	// was already completed or the ledger write failed.
	Entry     *types.CompletedStep
	Dashboard *types.Dashboard
	Changed   bool
}

type DeletedRoadmap struct {
	ID    uuid.UUID `json:"id"`
	Skill string    `json:"skill"`
	Level string    `json:"level"`
}

type RoadmapService interface {
	BuildRoadmap(ctx context.Context, in BuildRoadmapInput) (*BuildRoadmapOutput, error)

	// GetRoadmap and GetLatestRoadmap backfill resources on roadmaps whose
	// first step has no linked resource. GetRoadmap checks ownership before
	// anything is written; an empty requesterID skips the check.
	GetRoadmap(ctx context.Context, id uuid.UUID, requesterID string) (*types.Roadmap, error)
	GetLatestRoadmap(ctx context.Context, userID string) (*types.Roadmap, error)
	ListRoadmaps(ctx context.Context, userID string) ([]types.RoadmapSummary, error)

	UpdateRoadmap(ctx context.Context, in UpdateRoadmapInput) (*types.Roadmap, error)
	CompleteStep(ctx context.Context, in CompleteStepInput) (*CompleteStepOutput, error)
	DeleteRoadmap(ctx context.Context, id uuid.UUID, requesterID string) (*DeletedRoadmap, error)
}

type roadmapService struct {
	db         *gorm.DB
	log        *logger.Logger
	roadmaps   repos.RoadmapRepo
	dashboards repos.DashboardRepo
	planner    ResourcePlanner
	events     EventPublisher
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewRoadmapService(
	db *gorm.DB,
	log *logger.Logger,
	roadmaps repos.RoadmapRepo,
	dashboards repos.DashboardRepo,
	planner ResourcePlanner,
	events EventPublisher,
	metrics *observability.Metrics,
) RoadmapService {
	return &roadmapService{
		db:         db,
		log:        log.With("service", "RoadmapService"),
		roadmaps:   roadmaps,
		dashboards: dashboards,
		planner:    planner,
		events:     events,
		metrics:    metrics,
		now:        time.Now,
	}
}

func (s *roadmapService) BuildRoadmap(ctx context.Context, in BuildRoadmapInput) (*BuildRoadmapOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	skill := strings.TrimSpace(in.Skill)
	if userID == "" {
		return nil, apierr.InvalidArgument("user id is required")
	}
	if skill == "" {
		return nil, apierr.InvalidArgument("skill is required")
	}
	level := types.NormalizeLevel(in.Level)
	goal := strings.TrimSpace(in.Goal)
	if goal == "" {
		goal = types.DefaultGoal(skill)
	}

	ctx, span := observability.StartSpan(ctx, "roadmap.build",
		observability.AttrUserID.String(userID),
		observability.AttrSkill.String(skill),
		observability.AttrLevel.String(level.String()),
	)
	defer span.End()

	plan := s.planner.Plan(ctx, resources.PlanInput{Skill: skill, Level: level})
	row := &types.Roadmap{
		UserID: userID,
		Skill:  skill,
		Level:  level.String(),
		Goal:   goal,
		Steps:  datatypes.JSONSlice[types.Step](types.NewSteps(skill, level, plan.Steps)),
	}

	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.roadmaps.Create(dbc, row); err != nil {
		s.metrics.IncRoadmapOp("build", "error")
		span.RecordError(err)
		if errors.Is(err, repos.ErrVersionConflict) {
			return nil, apierr.Conflict("roadmap for %s was created concurrently", userID)
		}
		return nil, apierr.Internal("create roadmap", err)
	}
	span.SetAttributes(observability.AttrRoadmapID.String(row.ID.String()))

	d, err := s.dashboards.LinkRoadmap(dbc, userID, row.ID)
	if err != nil {
		// The roadmap is stored; the dashboard link is repaired by the next
		// POST /api/dashboard or completion.
		s.log.Error("link roadmap to dashboard failed", "user_id", userID, "roadmap_id", row.ID, "error", err)
	}

	s.metrics.IncRoadmapOp("build", "ok")
	s.log.Info("roadmap built", "user_id", userID, "roadmap_id", row.ID, "skill", skill, "level", level, "pool", len(plan.Pool.Candidates))
	s.events.Publish(ctx, realtime.NewEvent(realtime.EventRoadmapCreated, userID, row.ID.String(), map[string]any{
		"skill": skill,
		"level": level.String(),
	}))
	return &BuildRoadmapOutput{Roadmap: row, Dashboard: d}, nil
}

func (s *roadmapService) GetRoadmap(ctx context.Context, id uuid.UUID, requesterID string) (*types.Roadmap, error) {
	ctx, span := observability.StartSpan(ctx, "roadmap.get", observability.AttrRoadmapID.String(id.String()))
	defer span.End()
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.loadOwned(dbc, id, requesterID)
	if err != nil {
		return nil, err
	}
	return s.enrich(dbc, row)
}

func (s *roadmapService) GetLatestRoadmap(ctx context.Context, userID string) (*types.Roadmap, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.roadmaps.LatestByUser(dbc, strings.TrimSpace(userID))
	if err != nil {
		return nil, apierr.Internal("load latest roadmap", err)
	}
	if row == nil {
		return nil, apierr.NotFound("roadmap not found")
	}
	return s.enrich(dbc, row)
}

// enrich fills resources into every step of a roadmap that has none, keeping
// titles and statuses. Losing the version race means someone else already
// wrote; the stored roadmap is returned instead.
func (s *roadmapService) enrich(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, error) {
	if !row.NeedsEnrichment() || len(row.Steps) == 0 {
		return row, nil
	}
	plan := s.planner.Plan(dbc.Context(), resources.PlanInput{Skill: row.Skill, Level: row.NormalizedLevel()})
	if len(plan.Steps) == 0 {
		return row, nil
	}

	next := types.CloneSteps(row.Steps)
	for i := range next {
		next[i].Resources = append([]types.Resource(nil), plan.Steps[i%len(plan.Steps)]...)
	}

	version, err := s.roadmaps.UpdateSteps(dbc, row.ID, row.Version, next)
	switch {
	case errors.Is(err, repos.ErrVersionConflict):
		s.metrics.IncEnrichment("conflict")
		latest, gerr := s.roadmaps.GetByID(dbc, row.ID)
		if gerr != nil {
			return nil, apierr.Internal("reload roadmap", gerr)
		}
		if latest == nil {
			return nil, apierr.NotFound("roadmap %s not found", row.ID)
		}
		return latest, nil
	case err != nil:
		s.metrics.IncEnrichment("error")
		return nil, apierr.Internal("save enriched roadmap", err)
	}

	row.Steps = next
	row.Version = version
	s.metrics.IncEnrichment("ok")
	s.log.Info("roadmap resources backfilled", "roadmap_id", row.ID, "skill", row.Skill)
	s.events.Publish(dbc.Context(), realtime.NewEvent(realtime.EventRoadmapEnriched, row.UserID, row.ID.String(), nil))
	return row, nil
}

func (s *roadmapService) ListRoadmaps(ctx context.Context, userID string) ([]types.RoadmapSummary, error) {
	out, err := s.roadmaps.ListSummariesByUser(dbctx.Context{Ctx: ctx}, strings.TrimSpace(userID))
	if err != nil {
		return nil, apierr.Internal("list roadmaps", err)
	}
	return out, nil
}

func (s *roadmapService) UpdateRoadmap(ctx context.Context, in UpdateRoadmapInput) (*types.Roadmap, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.loadOwned(dbc, in.RoadmapID, in.RequesterID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Skill != nil {
		skill := strings.TrimSpace(*in.Skill)
		if skill == "" {
			return nil, apierr.InvalidArgument("skill cannot be empty")
		}
		updates["skill"] = skill
		row.Skill = skill
	}
	if in.Level != nil {
		level := types.NormalizeLevel(*in.Level).String()
		updates["level"] = level
		row.Level = level
	}
	if in.Goal != nil {
		goal := strings.TrimSpace(*in.Goal)
		updates["goal"] = goal
		row.Goal = goal
	}
	if len(updates) == 0 {
		return row, nil
	}

	version, err := s.roadmaps.UpdateFields(dbc, row.ID, row.Version, updates)
	if errors.Is(err, repos.ErrVersionConflict) {
		return nil, apierr.Conflict("roadmap %s was modified concurrently", row.ID)
	}
	if err != nil {
		return nil, apierr.Internal("update roadmap", err)
	}
	row.Version = version
	s.metrics.IncRoadmapOp("update", "ok")
	s.events.Publish(ctx, realtime.NewEvent(realtime.EventRoadmapUpdated, row.UserID, row.ID.String(), nil))
	return row, nil
}

func (s *roadmapService) CompleteStep(ctx context.Context, in CompleteStepInput) (*CompleteStepOutput, error) {
	ctx, span := observability.StartSpan(ctx, "roadmap.complete_step",
		observability.AttrRoadmapID.String(in.RoadmapID.String()),
		observability.AttrStepIndex.Int(in.StepIndex),
	)
	defer span.End()
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.loadOwned(dbc, in.RoadmapID, in.RequesterID)
	if err != nil {
		return nil, err
	}

	next, changed, err := types.CompleteStep(row.Steps, in.StepIndex)
	if errors.Is(err, types.ErrStepIndexOutOfRange) {
		return nil, apierr.InvalidArgument("invalid step index %d", in.StepIndex)
	}
	if err != nil {
		return nil, apierr.Internal("complete step", err)
	}
	if !changed {
		return &CompleteStepOutput{Roadmap: row, CompletedStep: row.Steps[in.StepIndex]}, nil
	}

	version, err := s.roadmaps.UpdateSteps(dbc, row.ID, row.Version, next)
	if errors.Is(err, repos.ErrVersionConflict) {
		s.metrics.IncRoadmapOp("complete_step", "conflict")
		return nil, apierr.Conflict("roadmap %s was modified concurrently", row.ID)
	}
	if err != nil {
		s.metrics.IncRoadmapOp("complete_step", "error")
		return nil, apierr.Internal("save roadmap progress", err)
	}
	row.Steps = next
	row.Version = version
	step := row.Steps[in.StepIndex]

	out := &CompleteStepOutput{Roadmap: row, CompletedStep: step, Changed: true}
	d, err := s.dashboards.AppendCompletedStep(dbc, row.UserID, step.Title, row.ID, s.now())
	if err != nil {
		// Step status on the roadmap is authoritative; the ledger is best effort.
		s.log.Error("append completed step failed", "user_id", row.UserID, "roadmap_id", row.ID, "error", err)
	} else {
		out.Dashboard = d
		if n := len(d.CompletedSteps); n > 0 {
			entry := d.CompletedSteps[n-1]
			out.Entry = &entry
		}
	}

	s.metrics.IncRoadmapOp("complete_step", "ok")
	s.events.Publish(ctx, realtime.NewEvent(realtime.EventRoadmapStepCompleted, row.UserID, row.ID.String(), map[string]any{
		"stepIndex": in.StepIndex,
		"stepTitle": step.Title,
	}))
	return out, nil
}

func (s *roadmapService) DeleteRoadmap(ctx context.Context, id uuid.UUID, requesterID string) (*DeletedRoadmap, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.loadOwned(dbc, id, requesterID)
	if err != nil {
		return nil, err
	}

	existing, err := s.dashboards.GetByUserID(dbc, row.UserID)
	if err != nil {
		return nil, apierr.Internal("load dashboard", err)
	}
	if existing != nil && existing.HasRoadmap(row.ID) {
		if _, err := s.dashboards.UnlinkRoadmap(dbc, row.UserID, row.ID); err != nil {
			return nil, apierr.Internal("unlink roadmap", err)
		}
	}

	if _, err := s.roadmaps.Delete(dbc, row.ID); err != nil {
		return nil, apierr.Internal("delete roadmap", err)
	}

	s.metrics.IncRoadmapOp("delete", "ok")
	s.events.Publish(ctx, realtime.NewEvent(realtime.EventRoadmapDeleted, row.UserID, row.ID.String(), nil))
	return &DeletedRoadmap{ID: row.ID, Skill: row.Skill, Level: row.Level}, nil
}

func (s *roadmapService) loadOwned(dbc dbctx.Context, id uuid.UUID, requesterID string) (*types.Roadmap, error) {
	row, err := s.roadmaps.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal("load roadmap", err)
	}
	if row == nil {
		return nil, apierr.NotFound("roadmap %s not found", id)
	}
	if requesterID = strings.TrimSpace(requesterID); requesterID != "" && requesterID != row.UserID {
		return nil, apierr.Forbidden("not authorized to access roadmap %s", id)
	}
	return row, nil
}
