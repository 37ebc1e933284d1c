package resources

import (
	"context"
	"time"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/providers"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/steps"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type UsecasesDeps struct {
	Log       *logger.Logger
	Providers []providers.Provider
	// Timeout bounds each provider fetch. Zero means the default.
	Timeout time.Duration
	Metrics *observability.Metrics
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

type (
	Buckets   = steps.Buckets
	Pool      = steps.Pool
	Candidate = steps.Candidate
)

type PlanInput struct {
	Skill string
	Level types.Level
}

// PlanOutput carries the pool and the per-step resource sets cut from it.
type PlanOutput struct {
	Pool  Pool
	Steps [][]types.Resource
}

// Plan gathers resources for skill at level and splits them into
// StepCount disjoint sets of at most PerStep links.
func (u Usecases) Plan(ctx context.Context, in PlanInput) PlanOutput {
	buckets := steps.Aggregate(ctx, steps.AggregateDeps{
		Log:       u.deps.Log,
		Providers: u.deps.Providers,
		Timeout:   u.deps.Timeout,
		Metrics:   u.deps.Metrics,
	}, steps.AggregateInput{Skill: in.Skill, Level: in.Level})

	pool := steps.BuildPool(buckets, in.Level)
	comp := map[string]int{}
	for id, n := range pool.Composition() {
		comp[id.String()] = n
	}
	u.deps.Metrics.ObservePool(in.Level.String(), comp, pool.Fallback)
	if u.deps.Log != nil {
		u.deps.Log.Debug("resource pool built", "skill", in.Skill, "level", in.Level, "size", len(pool.Candidates), "fallback", pool.Fallback)
	}

	return PlanOutput{
		Pool:  pool,
		Steps: steps.Partition(pool.Resources(), steps.StepCount, steps.PerStep),
	}
}
