package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos"
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

type fakeRoadmapRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*types.Roadmap
	clock time.Time

	updateStepsCalls int
	// conflictOnce makes the next conditional write lose the race.
	conflictOnce bool
}

func newFakeRoadmapRepo() *fakeRoadmapRepo {
	return &fakeRoadmapRepo{rows: map[uuid.UUID]*types.Roadmap{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func copyRoadmap(r *types.Roadmap) *types.Roadmap {
	cp := *r
	cp.Steps = datatypes.JSONSlice[types.Step](types.CloneSteps(r.Steps))
	return &cp
}

func (f *fakeRoadmapRepo) Create(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Version == 0 {
		row.Version = 1
	}
	if row.CreatedAt.IsZero() {
		f.clock = f.clock.Add(time.Second)
		row.CreatedAt = f.clock
	}
	f.rows[row.ID] = copyRoadmap(row)
	return row, nil
}

func (f *fakeRoadmapRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		return copyRoadmap(r), nil
	}
	return nil, nil
}

func (f *fakeRoadmapRepo) byUser(userID string) []*types.Roadmap {
	var out []*types.Roadmap
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, copyRoadmap(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRoadmapRepo) LatestByUser(dbc dbctx.Context, userID string) (*types.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rows := f.byUser(userID); len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func (f *fakeRoadmapRepo) ListByUser(dbc dbctx.Context, userID string) ([]*types.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byUser(userID), nil
}

func (f *fakeRoadmapRepo) ListSummariesByUser(dbc dbctx.Context, userID string) ([]types.RoadmapSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []types.RoadmapSummary{}
	for _, r := range f.byUser(userID) {
		out = append(out, r.Summary())
	}
	return out, nil
}

func (f *fakeRoadmapRepo) ExistsForUser(dbc dbctx.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUser(userID)) > 0, nil
}

func (f *fakeRoadmapRepo) UpdateSteps(dbc dbctx.Context, id uuid.UUID, expectedVersion int, steps []types.Step) (int, error) {
	f.mu.Lock()
	f.updateStepsCalls++
	f.mu.Unlock()
	return f.UpdateFields(dbc, id, expectedVersion, map[string]interface{}{"steps": types.CloneSteps(steps)})
}

func (f *fakeRoadmapRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Version != expectedVersion {
		return 0, repos.ErrVersionConflict
	}
	if f.conflictOnce {
		f.conflictOnce = false
		r.Version++
		return 0, repos.ErrVersionConflict
	}
	for k, v := range updates {
		switch k {
		case "steps":
			r.Steps = datatypes.JSONSlice[types.Step](v.([]types.Step))
		case "skill":
			r.Skill = v.(string)
		case "level":
			r.Level = v.(string)
		case "goal":
			r.Goal = v.(string)
		}
	}
	r.Version++
	return r.Version, nil
}

func (f *fakeRoadmapRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeDashboardRepo struct {
	mu   sync.Mutex
	rows map[string]*types.Dashboard
}

func newFakeDashboardRepo() *fakeDashboardRepo {
	return &fakeDashboardRepo{rows: map[string]*types.Dashboard{}}
}

func copyDashboard(d *types.Dashboard) *types.Dashboard {
	cp := *d
	cp.SavedRoadmaps = append(datatypes.JSONSlice[types.SavedRoadmap]{}, d.SavedRoadmaps...)
	cp.CompletedSteps = append(datatypes.JSONSlice[types.CompletedStep]{}, d.CompletedSteps...)
	return &cp
}

func (f *fakeDashboardRepo) GetByUserID(dbc dbctx.Context, userID string) (*types.Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.rows[userID]; ok {
		return copyDashboard(d), nil
	}
	return nil, nil
}

func (f *fakeDashboardRepo) Ensure(dbc dbctx.Context, userID string) (*types.Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[userID]; !ok {
		d := types.NewDashboard(userID, time.Time{})
		d.ID = uuid.New()
		d.Version = 1
		f.rows[userID] = d
	}
	return copyDashboard(f.rows[userID]), nil
}

func (f *fakeDashboardRepo) Update(dbc dbctx.Context, d *types.Dashboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[d.UserID]
	if !ok || cur.Version != d.Version {
		return repos.ErrVersionConflict
	}
	d.Version++
	f.rows[d.UserID] = copyDashboard(d)
	return nil
}

func (f *fakeDashboardRepo) Mutate(dbc dbctx.Context, userID string, fn repos.DashboardMutation) (*types.Dashboard, error) {
	d, err := f.Ensure(dbc, userID)
	if err != nil {
		return nil, err
	}
	changed, err := fn(d)
	if err != nil || !changed {
		return d, err
	}
	if err := f.Update(dbc, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (f *fakeDashboardRepo) LinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error) {
	return f.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) { return d.LinkRoadmap(roadmapID), nil })
}

func (f *fakeDashboardRepo) UnlinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error) {
	return f.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) { return d.UnlinkRoadmap(roadmapID), nil })
}

func (f *fakeDashboardRepo) AppendCompletedStep(dbc dbctx.Context, userID, stepTitle string, roadmapID uuid.UUID, at time.Time) (*types.Dashboard, error) {
	return f.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) {
		d.RecordCompletion(stepTitle, roadmapID, at)
		return true, nil
	})
}

type fakePlanner struct {
	calls int
	out   resources.PlanOutput
}

func (f *fakePlanner) Plan(ctx context.Context, in resources.PlanInput) resources.PlanOutput {
	f.calls++
	return f.out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev realtime.Event) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *recordingPublisher) eventTypes() []realtime.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.EventType, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}
