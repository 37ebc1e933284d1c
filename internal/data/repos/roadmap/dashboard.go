package roadmap

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const dashboardWriteAttempts = 3

// DashboardMutation edits a loaded dashboard in place and reports whether
// anything changed. Returning false skips the write.
type DashboardMutation func(d *types.Dashboard) (bool, error)

type DashboardRepo interface {
	GetByUserID(dbc dbctx.Context, userID string) (*types.Dashboard, error)
	// Ensure returns the user's dashboard, creating an empty one if missing.
	Ensure(dbc dbctx.Context, userID string) (*types.Dashboard, error)
	// Mutate applies fn to the latest dashboard and writes it back under a
	// version check, retrying on concurrent writers.
	Mutate(dbc dbctx.Context, userID string, fn DashboardMutation) (*types.Dashboard, error)
	// Update writes d back if the row is still at d.Version and bumps the
	// version on success.
	Update(dbc dbctx.Context, d *types.Dashboard) error

	LinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error)
	UnlinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error)
	AppendCompletedStep(dbc dbctx.Context, userID, stepTitle string, roadmapID uuid.UUID, at time.Time) (*types.Dashboard, error)
}

type dashboardRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewDashboardRepo(db *gorm.DB, baseLog *logger.Logger) DashboardRepo {
	return &dashboardRepo{db: db, log: baseLog.With("repo", "DashboardRepo"), now: time.Now}
}

func (r *dashboardRepo) GetByUserID(dbc dbctx.Context, userID string) (*types.Dashboard, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == "" {
		return nil, nil
	}
	var out []*types.Dashboard
	if err := t.WithContext(dbc.Context()).Where("user_id = ?", userID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *dashboardRepo) Ensure(dbc dbctx.Context, userID string) (*types.Dashboard, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == "" {
		return nil, errors.New("missing user id")
	}
	if existing, err := r.GetByUserID(dbc, userID); err != nil || existing != nil {
		return existing, err
	}
	row := types.NewDashboard(userID, r.now())
	if err := t.WithContext(dbc.Context()).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(row).Error; err != nil {
		return nil, classify(err)
	}
	// A concurrent creator may have won the insert; read back the stored row.
	return r.GetByUserID(dbc, userID)
}

func (r *dashboardRepo) Mutate(dbc dbctx.Context, userID string, fn DashboardMutation) (*types.Dashboard, error) {
	for attempt := 1; attempt <= dashboardWriteAttempts; attempt++ {
		d, err := r.Ensure(dbc, userID)
		if errors.Is(err, ErrVersionConflict) {
			r.log.Debug("dashboard create lost race", "user_id", userID, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		changed, err := fn(d)
		if err != nil {
			return nil, err
		}
		if !changed {
			return d, nil
		}
		err = r.Update(dbc, d)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		r.log.Debug("dashboard write lost race", "user_id", userID, "attempt", attempt)
	}
	return nil, ErrVersionConflict
}

func (r *dashboardRepo) Update(dbc dbctx.Context, d *types.Dashboard) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if d == nil || d.ID == uuid.Nil {
		return errors.New("missing dashboard id")
	}
	res := t.WithContext(dbc.Context()).
		Model(&types.Dashboard{}).
		Where("id = ? AND version = ?", d.ID, d.Version).
		Updates(map[string]interface{}{
			"saved_roadmaps":  d.SavedRoadmaps,
			"completed_steps": d.CompletedSteps,
			"current_streak":  d.CurrentStreak,
			"last_active":     d.LastActive,
			"version":         gorm.Expr("version + 1"),
			"updated_at":      r.now().UTC(),
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	d.Version++
	return nil
}

func (r *dashboardRepo) LinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error) {
	return r.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) {
		return d.LinkRoadmap(roadmapID), nil
	})
}

func (r *dashboardRepo) UnlinkRoadmap(dbc dbctx.Context, userID string, roadmapID uuid.UUID) (*types.Dashboard, error) {
	return r.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) {
		return d.UnlinkRoadmap(roadmapID), nil
	})
}

func (r *dashboardRepo) AppendCompletedStep(dbc dbctx.Context, userID, stepTitle string, roadmapID uuid.UUID, at time.Time) (*types.Dashboard, error) {
	return r.Mutate(dbc, userID, func(d *types.Dashboard) (bool, error) {
		d.RecordCompletion(stepTitle, roadmapID, at)
		return true, nil
	})
}
