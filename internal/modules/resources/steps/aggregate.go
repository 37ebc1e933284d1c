package steps

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/providers"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const DefaultProviderTimeout = 8 * time.Second

// Buckets holds each provider's results in the provider's own order.
type Buckets map[providers.ID][]types.Resource

type AggregateDeps struct {
	Log       *logger.Logger
	Providers []providers.Provider
	Timeout   time.Duration
	Metrics   *observability.Metrics
}

type AggregateInput struct {
	Skill string
	Level types.Level
}

// Aggregate fans out to every provider at once and waits for all of them.
// Each provider runs under its own deadline; one that times out, panics or
// fails contributes an empty bucket and never delays the join past its
// deadline. Every configured provider has an entry in the result.
func Aggregate(ctx context.Context, deps AggregateDeps, in AggregateInput) Buckets {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}

	ctx, span := observability.StartSpan(ctx, "resources.aggregate",
		observability.AttrSkill.String(in.Skill),
		observability.AttrLevel.String(in.Level.String()),
		attribute.Int("providers", len(deps.Providers)),
	)
	defer span.End()

	results := make([][]types.Resource, len(deps.Providers))
	var g errgroup.Group
	for i, p := range deps.Providers {
		g.Go(func() error {
			results[i] = fetchOne(ctx, deps, p, in, timeout)
			return nil
		})
	}
	_ = g.Wait()

	out := make(Buckets, len(deps.Providers))
	for i, p := range deps.Providers {
		if results[i] == nil {
			results[i] = []types.Resource{}
		}
		out[p.ID()] = results[i]
	}
	return out
}

func fetchOne(ctx context.Context, deps AggregateDeps, p providers.Provider, in AggregateInput, timeout time.Duration) []types.Resource {
	id := p.ID()
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pctx, span := observability.StartSpan(pctx, "provider.fetch", observability.AttrProvider.String(id.String()))
	defer span.End()

	start := time.Now()
	type result struct {
		out      []types.Resource
		panicked any
	}
	done := make(chan result, 1)
	go func() {
		var res result
		defer func() {
			if r := recover(); r != nil {
				res = result{panicked: r}
			}
			done <- res
		}()
		res.out = p.Fetch(pctx, in.Skill, in.Level)
	}()

	var (
		out     []types.Resource
		outcome string
	)
	select {
	case res := <-done:
		switch {
		case res.panicked != nil:
			outcome = observability.OutcomePanic
			span.SetStatus(codes.Error, "panic")
			if deps.Log != nil {
				deps.Log.Error("resource provider panicked", "provider", id, "panic", fmt.Sprint(res.panicked))
			}
		case len(res.out) == 0:
			outcome = observability.OutcomeEmpty
		default:
			outcome = observability.OutcomeOK
			out = res.out
		}
	case <-pctx.Done():
		outcome = observability.OutcomeTimeout
		span.SetStatus(codes.Error, "timeout")
		if deps.Log != nil {
			deps.Log.Warn("resource provider timed out", "provider", id, "timeout", timeout.String())
		}
	}

	span.SetAttributes(attribute.String("outcome", outcome), attribute.Int("results", len(out)))
	deps.Metrics.ObserveProviderFetch(id.String(), outcome, len(out), time.Since(start))
	return out
}
