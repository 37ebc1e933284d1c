package roadmap

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type RoadmapRepo interface {
	Create(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error)
	LatestByUser(dbc dbctx.Context, userID string) (*types.Roadmap, error)
	ListByUser(dbc dbctx.Context, userID string) ([]*types.Roadmap, error)
	ListSummariesByUser(dbc dbctx.Context, userID string) ([]types.RoadmapSummary, error)
	ExistsForUser(dbc dbctx.Context, userID string) (bool, error)

	// UpdateSteps replaces the steps of a roadmap read at expectedVersion and
	// returns the new version. ErrVersionConflict means another writer won.
	UpdateSteps(dbc dbctx.Context, id uuid.UUID, expectedVersion int, steps []types.Step) (int, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (int, error)

	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) Create(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, errors.New("nil roadmap")
	}
	if row.Steps == nil {
		row.Steps = datatypes.JSONSlice[types.Step]{}
	}
	if err := t.WithContext(dbc.Context()).Create(row).Error; err != nil {
		return nil, classify(err)
	}
	return row, nil
}

func (r *roadmapRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Roadmap
	if err := t.WithContext(dbc.Context()).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *roadmapRepo) LatestByUser(dbc dbctx.Context, userID string) (*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == "" {
		return nil, nil
	}
	var out []*types.Roadmap
	if err := t.WithContext(dbc.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *roadmapRepo) ListByUser(dbc dbctx.Context, userID string) ([]*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Roadmap{}
	if userID == "" {
		return out, nil
	}
	if err := t.WithContext(dbc.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *roadmapRepo) ListSummariesByUser(dbc dbctx.Context, userID string) ([]types.RoadmapSummary, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []types.RoadmapSummary{}
	if userID == "" {
		return out, nil
	}
	var rows []*types.Roadmap
	if err := t.WithContext(dbc.Context()).
		Select("id", "skill", "level", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out = append(out, row.Summary())
	}
	return out, nil
}

func (r *roadmapRepo) ExistsForUser(dbc dbctx.Context, userID string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == "" {
		return false, nil
	}
	var n int64
	if err := t.WithContext(dbc.Context()).Model(&types.Roadmap{}).Where("user_id = ?", userID).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *roadmapRepo) UpdateSteps(dbc dbctx.Context, id uuid.UUID, expectedVersion int, steps []types.Step) (int, error) {
	if steps == nil {
		steps = []types.Step{}
	}
	return r.UpdateFields(dbc, id, expectedVersion, map[string]interface{}{
		"steps": datatypes.JSONSlice[types.Step](steps),
	})
}

func (r *roadmapRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, errors.New("missing roadmap id")
	}
	if len(updates) == 0 {
		return expectedVersion, nil
	}
	cols := make(map[string]interface{}, len(updates)+2)
	for k, v := range updates {
		cols[k] = v
	}
	cols["version"] = gorm.Expr("version + 1")
	cols["updated_at"] = time.Now().UTC()

	res := t.WithContext(dbc.Context()).
		Model(&types.Roadmap{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(cols)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrVersionConflict
	}
	return expectedVersion + 1, nil
}

func (r *roadmapRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(dbc.Context()).Where("id = ?", id).Delete(&types.Roadmap{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
