package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

type roadmapFixture struct {
	svc        *roadmapService
	roadmaps   *fakeRoadmapRepo
	dashboards *fakeDashboardRepo
	planner    *fakePlanner
	events     *recordingPublisher
}

func newRoadmapFixture(t *testing.T) roadmapFixture {
	t.Helper()
	f := roadmapFixture{
		roadmaps:   newFakeRoadmapRepo(),
		dashboards: newFakeDashboardRepo(),
		planner: &fakePlanner{out: resources.PlanOutput{Steps: [][]types.Resource{
			{{Title: "A", URL: "https://a"}},
			{{Title: "B", URL: "https://b"}},
			{{Title: "C", URL: "https://c"}},
		}}},
		events: &recordingPublisher{},
	}
	f.svc = NewRoadmapService(nil, logger.Nop(), f.roadmaps, f.dashboards, f.planner, f.events, nil).(*roadmapService)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return f
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := apierr.CodeOf(err); got != code {
		t.Fatalf("error code: want=%s got=%s (err=%v)", code, got, err)
	}
}

func TestBuildRoadmapLaysOutStepsAndLinksDashboard(t *testing.T) {
	f := newRoadmapFixture(t)
	out, err := f.svc.BuildRoadmap(context.Background(), BuildRoadmapInput{UserID: "u1", Skill: "Go", Level: "INTERMEDIATE"})
	if err != nil {
		t.Fatalf("BuildRoadmap: %v", err)
	}
	rm := out.Roadmap
	if rm.Level != "intermediate" || rm.Goal != "Learn Go" {
		t.Fatalf("roadmap: level=%q goal=%q", rm.Level, rm.Goal)
	}
	if len(rm.Steps) != 3 || rm.Steps[0].Title != "Go Fundamentals" || rm.Steps[0].Status != types.StepCurrent {
		t.Fatalf("steps: %+v", rm.Steps)
	}
	if rm.Steps[1].Status != types.StepPending || rm.Steps[2].Resources[0].URL != "https://c" {
		t.Fatalf("steps: %+v", rm.Steps)
	}
	if rm.Steps[2].Difficulty != "Intermediate" {
		t.Fatalf("difficulty: %q", rm.Steps[2].Difficulty)
	}
	if out.Dashboard == nil || !out.Dashboard.HasRoadmap(rm.ID) {
		t.Fatalf("dashboard does not reference the roadmap: %+v", out.Dashboard)
	}
	if got := f.events.eventTypes(); len(got) != 1 || got[0] != realtime.EventRoadmapCreated {
		t.Fatalf("events: %v", got)
	}

	// A second roadmap is appended; links stay unique.
	second, err := f.svc.BuildRoadmap(context.Background(), BuildRoadmapInput{UserID: "u1", Skill: "Rust", Level: "advanced", Goal: "systems"})
	if err != nil {
		t.Fatalf("BuildRoadmap(second): %v", err)
	}
	if len(second.Dashboard.SavedRoadmaps) != 2 {
		t.Fatalf("saved roadmaps: want=2 got=%d", len(second.Dashboard.SavedRoadmaps))
	}
}

func TestBuildRoadmapValidatesInput(t *testing.T) {
	f := newRoadmapFixture(t)
	_, err := f.svc.BuildRoadmap(context.Background(), BuildRoadmapInput{Skill: "Go"})
	wantCode(t, err, apierr.CodeInvalidArgument)
	_, err = f.svc.BuildRoadmap(context.Background(), BuildRoadmapInput{UserID: "u1", Skill: "  "})
	wantCode(t, err, apierr.CodeInvalidArgument)
	if f.planner.calls != 0 {
		t.Fatalf("planner called for invalid input")
	}
}

func seedRoadmap(t *testing.T, f roadmapFixture, userID string, steps []types.Step) *types.Roadmap {
	t.Helper()
	row := &types.Roadmap{UserID: userID, Skill: "python", Level: "beginner", Steps: datatypes.JSONSlice[types.Step](steps)}
	if _, err := f.roadmaps.Create(dbctx.Context{Ctx: context.Background()}, row); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return row
}

func threeSteps() []types.Step {
	return types.NewSteps("python", types.LevelBeginner, [][]types.Resource{
		{{Title: "x", URL: "https://x"}}, {{Title: "y", URL: "https://y"}}, {{Title: "z", URL: "https://z"}},
	})
}

func TestCompleteFirstStepWritesOneLedgerEntry(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", threeSteps())
	title := rm.Steps[0].Title

	out, err := f.svc.CompleteStep(context.Background(), CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0, RequesterID: "u1"})
	if err != nil {
		t.Fatalf("CompleteStep: %v", err)
	}
	want := []types.StepStatus{types.StepCompleted, types.StepCurrent, types.StepPending}
	for i, s := range out.Roadmap.Steps {
		if s.Status != want[i] {
			t.Fatalf("status[%d]: want=%s got=%s", i, want[i], s.Status)
		}
	}
	if out.CompletedStep.Title != title || !out.Changed {
		t.Fatalf("completed step: %+v changed=%v", out.CompletedStep, out.Changed)
	}

	d, _ := f.dashboards.GetByUserID(dbctx.Context{}, "u1")
	if d == nil || len(d.CompletedSteps) != 1 {
		t.Fatalf("ledger: want exactly one entry, got %+v", d)
	}
	if d.CompletedSteps[0].StepTitle != title || d.CompletedSteps[0].RoadmapID == nil || *d.CompletedSteps[0].RoadmapID != rm.ID {
		t.Fatalf("ledger entry: %+v", d.CompletedSteps[0])
	}
	if d.CurrentStreak != 1 || !d.LastActive.Equal(f.svc.now()) {
		t.Fatalf("streak=%d lastActive=%v", d.CurrentStreak, d.LastActive)
	}
	if out.Entry == nil || out.Entry.StepTitle != title {
		t.Fatalf("returned entry: %+v", out.Entry)
	}

	stored, _ := f.roadmaps.GetByID(dbctx.Context{}, rm.ID)
	if stored.Steps[0].Status != types.StepCompleted || stored.Version != 2 {
		t.Fatalf("stored: version=%d steps=%+v", stored.Version, stored.Steps)
	}
}

func TestCompleteStepTwiceIsNoOp(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", threeSteps())
	ctx := context.Background()

	if _, err := f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0}); err != nil {
		t.Fatalf("first: %v", err)
	}
	out, err := f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if out.Changed || out.Entry != nil {
		t.Fatalf("second call should be a no-op: %+v", out)
	}
	d, _ := f.dashboards.GetByUserID(dbctx.Context{}, "u1")
	if len(d.CompletedSteps) != 1 {
		t.Fatalf("ledger entries: want=1 got=%d", len(d.CompletedSteps))
	}
	if f.roadmaps.updateStepsCalls != 1 {
		t.Fatalf("roadmap writes: want=1 got=%d", f.roadmaps.updateStepsCalls)
	}
}

func TestCompleteLastStepLeavesOthersAlone(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", threeSteps())

	out, err := f.svc.CompleteStep(context.Background(), CompleteStepInput{RoadmapID: rm.ID, StepIndex: 2})
	if err != nil {
		t.Fatalf("CompleteStep: %v", err)
	}
	want := []types.StepStatus{types.StepCurrent, types.StepPending, types.StepCompleted}
	for i, s := range out.Roadmap.Steps {
		if s.Status != want[i] {
			t.Fatalf("status[%d]: want=%s got=%s", i, want[i], s.Status)
		}
	}
}

func TestCompleteStepErrors(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", threeSteps())
	ctx := context.Background()

	_, err := f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: uuid.New(), StepIndex: 0})
	wantCode(t, err, apierr.CodeNotFound)

	for _, idx := range []int{-1, 3} {
		_, err = f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: idx})
		wantCode(t, err, apierr.CodeInvalidArgument)
	}
	stored, _ := f.roadmaps.GetByID(dbctx.Context{}, rm.ID)
	if stored.Version != 1 || stored.Steps[0].Status != types.StepCurrent {
		t.Fatalf("out-of-range call mutated the roadmap: %+v", stored)
	}

	_, err = f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0, RequesterID: "intruder"})
	wantCode(t, err, apierr.CodeForbidden)

	f.roadmaps.conflictOnce = true
	_, err = f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0})
	wantCode(t, err, apierr.CodeConflict)
	if d, _ := f.dashboards.GetByUserID(dbctx.Context{}, "u1"); d != nil && len(d.CompletedSteps) != 0 {
		t.Fatalf("ledger written despite conflict")
	}
}

func TestGetRoadmapBackfillsMissingResources(t *testing.T) {
	f := newRoadmapFixture(t)
	steps := types.NewSteps("python", types.LevelBeginner, nil)
	steps[0].Status = types.StepCompleted
	steps[1].Status = types.StepCurrent
	rm := seedRoadmap(t, f, "u1", steps)

	got, err := f.svc.GetRoadmap(context.Background(), rm.ID, "u1")
	if err != nil {
		t.Fatalf("GetRoadmap: %v", err)
	}
	if got.Steps[0].Resources[0].URL != "https://a" || got.Steps[2].Resources[0].URL != "https://c" {
		t.Fatalf("resources not assigned positionally: %+v", got.Steps)
	}
	if got.Steps[0].Status != types.StepCompleted || got.Steps[1].Status != types.StepCurrent || got.Steps[0].Title != steps[0].Title {
		t.Fatalf("enrichment changed titles or statuses: %+v", got.Steps)
	}
	if f.planner.calls != 1 {
		t.Fatalf("planner calls: want=1 got=%d", f.planner.calls)
	}

	again, err := f.svc.GetRoadmap(context.Background(), rm.ID, "u1")
	if err != nil {
		t.Fatalf("GetRoadmap(again): %v", err)
	}
	if f.planner.calls != 1 || again.Version != got.Version {
		t.Fatalf("second read re-enriched: calls=%d version %d -> %d", f.planner.calls, got.Version, again.Version)
	}
}

func TestGetRoadmapChecksOwnerBeforeBackfill(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", types.NewSteps("go", types.LevelBeginner, nil))

	_, err := f.svc.GetRoadmap(context.Background(), rm.ID, "u2")
	wantCode(t, err, apierr.CodeForbidden)
	if f.planner.calls != 0 || f.roadmaps.updateStepsCalls != 0 {
		t.Fatalf("non-owner read enriched: planner=%d writes=%d", f.planner.calls, f.roadmaps.updateStepsCalls)
	}
	if len(f.events.eventTypes()) != 0 {
		t.Fatalf("non-owner read published: %v", f.events.eventTypes())
	}
	stored, _ := f.roadmaps.GetByID(dbctx.Context{}, rm.ID)
	if stored.Version != rm.Version {
		t.Fatalf("version: want=%d got=%d", rm.Version, stored.Version)
	}
}

func TestGetRoadmapWrapsStepSetsForLongRoadmaps(t *testing.T) {
	f := newRoadmapFixture(t)
	steps := append(types.NewSteps("go", types.LevelBeginner, nil), types.Step{Title: "Extra", Status: types.StepPending})
	rm := seedRoadmap(t, f, "u1", steps)

	got, err := f.svc.GetRoadmap(context.Background(), rm.ID, "u1")
	if err != nil {
		t.Fatalf("GetRoadmap: %v", err)
	}
	if got.Steps[3].Resources[0].URL != "https://a" {
		t.Fatalf("fourth step should reuse the first set: %+v", got.Steps[3])
	}
}

func TestGetRoadmapConflictReturnsStored(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", types.NewSteps("go", types.LevelBeginner, nil))
	f.roadmaps.conflictOnce = true

	got, err := f.svc.GetRoadmap(context.Background(), rm.ID, "u1")
	if err != nil {
		t.Fatalf("GetRoadmap: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("want reloaded roadmap at version 2, got %d", got.Version)
	}
}

func TestGetLatestRoadmap(t *testing.T) {
	f := newRoadmapFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetLatestRoadmap(ctx, "u1")
	wantCode(t, err, apierr.CodeNotFound)

	seedRoadmap(t, f, "u1", threeSteps())
	newer := seedRoadmap(t, f, "u1", threeSteps())
	got, err := f.svc.GetLatestRoadmap(ctx, "u1")
	if err != nil || got.ID != newer.ID {
		t.Fatalf("GetLatestRoadmap: want=%v got=%v err=%v", newer.ID, got, err)
	}
	if f.planner.calls != 0 {
		t.Fatalf("populated roadmap should not be enriched")
	}
}

func TestUpdateRoadmapEditsMetadataOnly(t *testing.T) {
	f := newRoadmapFixture(t)
	rm := seedRoadmap(t, f, "u1", threeSteps())
	goal := "Ship a scraper"
	level := "Advanced"

	got, err := f.svc.UpdateRoadmap(context.Background(), UpdateRoadmapInput{RoadmapID: rm.ID, RequesterID: "u1", Goal: &goal, Level: &level})
	if err != nil {
		t.Fatalf("UpdateRoadmap: %v", err)
	}
	if got.Goal != goal || got.Level != "advanced" || got.Version != 2 {
		t.Fatalf("updated: %+v", got)
	}
	stored, _ := f.roadmaps.GetByID(dbctx.Context{}, rm.ID)
	if stored.Steps[0].Title != rm.Steps[0].Title {
		t.Fatalf("steps changed by metadata update")
	}

	empty := " "
	_, err = f.svc.UpdateRoadmap(context.Background(), UpdateRoadmapInput{RoadmapID: rm.ID, Skill: &empty})
	wantCode(t, err, apierr.CodeInvalidArgument)
	_, err = f.svc.UpdateRoadmap(context.Background(), UpdateRoadmapInput{RoadmapID: rm.ID, RequesterID: "u2", Goal: &goal})
	wantCode(t, err, apierr.CodeForbidden)
}

func TestDeleteRoadmapKeepsLedger(t *testing.T) {
	f := newRoadmapFixture(t)
	ctx := context.Background()
	built, err := f.svc.BuildRoadmap(ctx, BuildRoadmapInput{UserID: "u1", Skill: "go", Level: "beginner"})
	if err != nil {
		t.Fatalf("BuildRoadmap: %v", err)
	}
	rm := built.Roadmap
	if _, err := f.svc.CompleteStep(ctx, CompleteStepInput{RoadmapID: rm.ID, StepIndex: 0}); err != nil {
		t.Fatalf("CompleteStep: %v", err)
	}

	_, err = f.svc.DeleteRoadmap(ctx, rm.ID, "u2")
	wantCode(t, err, apierr.CodeForbidden)

	del, err := f.svc.DeleteRoadmap(ctx, rm.ID, "u1")
	if err != nil {
		t.Fatalf("DeleteRoadmap: %v", err)
	}
	if del.ID != rm.ID || del.Skill != "go" || del.Level != "beginner" {
		t.Fatalf("deleted summary: %+v", del)
	}
	d, _ := f.dashboards.GetByUserID(dbctx.Context{}, "u1")
	if d.HasRoadmap(rm.ID) {
		t.Fatalf("dashboard still references deleted roadmap")
	}
	if len(d.CompletedSteps) != 1 {
		t.Fatalf("ledger pruned on delete: %+v", d.CompletedSteps)
	}

	_, err = f.svc.DeleteRoadmap(ctx, rm.ID, "u1")
	wantCode(t, err, apierr.CodeNotFound)
}

func TestListRoadmapsNewestFirst(t *testing.T) {
	f := newRoadmapFixture(t)
	first := seedRoadmap(t, f, "u1", threeSteps())
	second := seedRoadmap(t, f, "u1", threeSteps())
	seedRoadmap(t, f, "u2", threeSteps())

	got, err := f.svc.ListRoadmaps(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListRoadmaps: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("order: %+v", got)
	}
}
