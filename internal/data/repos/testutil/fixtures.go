package testutil

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
)

// SeedRoadmap inserts a freshly laid out roadmap with one linked resource
// per step.
func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, skill string, level types.Level) *types.Roadmap {
	tb.Helper()
	res := [][]types.Resource{
		{{Title: skill + " docs", URL: "https://example.com/" + skill + "/docs"}},
		{{Title: skill + " practice", URL: "https://example.com/" + skill + "/practice"}},
		{{Title: skill + " project", URL: "https://example.com/" + skill + "/project"}},
	}
	rm := &types.Roadmap{
		UserID: userID,
		Skill:  skill,
		Level:  level.String(),
		Goal:   types.DefaultGoal(skill),
		Steps:  datatypes.JSONSlice[types.Step](types.NewSteps(skill, level, res)),
	}
	if err := tx.WithContext(ctx).Create(rm).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	return rm
}

// SeedLegacyRoadmap inserts a roadmap whose steps carry no resources, the
// shape rows had before resources were stored with the roadmap.
func SeedLegacyRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, skill string, level types.Level) *types.Roadmap {
	tb.Helper()
	rm := &types.Roadmap{
		UserID: userID,
		Skill:  skill,
		Level:  level.String(),
		Goal:   types.DefaultGoal(skill),
		Steps:  datatypes.JSONSlice[types.Step](types.NewSteps(skill, level, nil)),
	}
	if err := tx.WithContext(ctx).Create(rm).Error; err != nil {
		tb.Fatalf("seed legacy roadmap: %v", err)
	}
	return rm
}

// SeedDashboard inserts an empty dashboard for userID.
func SeedDashboard(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string) *types.Dashboard {
	tb.Helper()
	d := &types.Dashboard{UserID: userID}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed dashboard: %v", err)
	}
	return d
}
