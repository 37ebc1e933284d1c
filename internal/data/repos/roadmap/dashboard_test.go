package roadmap

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos/testutil"
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
)

func TestDashboardRepoEnsureIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDashboardRepo(db, testutil.Logger(t))
	user := testutil.UserID()

	if got, err := repo.GetByUserID(dbc, user); err != nil || got != nil {
		t.Fatalf("GetByUserID(before): got=%v err=%v", got, err)
	}
	first, err := repo.Ensure(dbc, user)
	if err != nil || first == nil {
		t.Fatalf("Ensure: got=%v err=%v", first, err)
	}
	second, err := repo.Ensure(dbc, user)
	if err != nil || second == nil || second.ID != first.ID {
		t.Fatalf("Ensure(again): want id=%v got=%+v err=%v", first.ID, second, err)
	}
	if len(second.SavedRoadmaps) != 0 || len(second.CompletedSteps) != 0 {
		t.Fatalf("new dashboard not empty: %+v", second)
	}
}

func TestDashboardRepoLinkUnlink(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDashboardRepo(db, testutil.Logger(t))
	user := testutil.UserID()
	a, b := uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{a, b, a} {
		if _, err := repo.LinkRoadmap(dbc, user, id); err != nil {
			t.Fatalf("LinkRoadmap: %v", err)
		}
	}
	d, err := repo.GetByUserID(dbc, user)
	if err != nil || d == nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(d.SavedRoadmaps) != 2 || d.SavedRoadmaps[0].RoadmapID != a || d.SavedRoadmaps[1].RoadmapID != b {
		t.Fatalf("saved roadmaps: %+v", d.SavedRoadmaps)
	}
	if d.Version != 3 {
		t.Fatalf("version: want=3 got=%d", d.Version)
	}

	if _, err := repo.UnlinkRoadmap(dbc, user, a); err != nil {
		t.Fatalf("UnlinkRoadmap: %v", err)
	}
	d, _ = repo.GetByUserID(dbc, user)
	if len(d.SavedRoadmaps) != 1 || d.SavedRoadmaps[0].RoadmapID != b {
		t.Fatalf("after unlink: %+v", d.SavedRoadmaps)
	}
}

func TestDashboardRepoAppendCompletedStep(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDashboardRepo(db, testutil.Logger(t))
	user := testutil.UserID()
	rm := uuid.New()
	at := time.Now().UTC().Add(time.Minute)

	d, err := repo.AppendCompletedStep(dbc, user, "Introduction to Go", rm, at)
	if err != nil {
		t.Fatalf("AppendCompletedStep: %v", err)
	}
	if len(d.CompletedSteps) != 1 || d.CurrentStreak != 1 {
		t.Fatalf("returned dashboard: steps=%d streak=%d", len(d.CompletedSteps), d.CurrentStreak)
	}

	stored, err := repo.GetByUserID(dbc, user)
	if err != nil || stored == nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(stored.CompletedSteps) != 1 {
		t.Fatalf("completed steps: want=1 got=%d", len(stored.CompletedSteps))
	}
	entry := stored.CompletedSteps[0]
	if entry.StepTitle != "Introduction to Go" || entry.RoadmapID == nil || *entry.RoadmapID != rm {
		t.Fatalf("entry: %+v", entry)
	}
}

func TestDashboardRepoMutateNoChangeSkipsWrite(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDashboardRepo(db, testutil.Logger(t))
	user := testutil.UserID()

	d, err := repo.Mutate(dbc, user, func(*types.Dashboard) (bool, error) { return false, nil })
	if err != nil || d == nil {
		t.Fatalf("Mutate: %v", err)
	}
	if d.Version != 1 {
		t.Fatalf("version: want=1 got=%d", d.Version)
	}
}

func TestDashboardRepoEnsureReturnsExisting(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDashboardRepo(db, testutil.Logger(t))
	user := testutil.UserID()

	seeded := testutil.SeedDashboard(t, dbc.Ctx, db, user)
	got, err := repo.Ensure(dbc, user)
	if err != nil || got == nil || got.ID != seeded.ID || got.Version != 1 {
		t.Fatalf("Ensure: want id=%v got=%+v err=%v", seeded.ID, got, err)
	}
}
