package steps

import (
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/providers"
)

const (
	PoolCap   = 25
	PerStep   = 5
	StepCount = 3
)

// FallbackProvider labels fallback resources in a pool's composition.
const FallbackProvider providers.ID = "fallback"

var fallbackResources = []types.Resource{
	{Title: "freeCodeCamp", URL: "https://www.freecodecamp.org/"},
	{Title: "MDN Web Docs", URL: "https://developer.mozilla.org/"},
	{Title: "Coursera", URL: "https://www.coursera.org/"},
	{Title: "Udemy", URL: "https://www.udemy.com/"},
}

// FallbackResources returns a fresh copy of the generic landing pages used
// when nothing better is available.
func FallbackResources() []types.Resource {
	return append([]types.Resource(nil), fallbackResources...)
}

// Candidate is a pooled resource tagged with where it came from.
type Candidate struct {
	Provider providers.ID
	Resource types.Resource
}

// Pool is the capped, de-duplicated candidate list for one roadmap.
type Pool struct {
	Candidates []Candidate
	// Fallback is true when no provider contributed anything.
	Fallback bool
}

// Resources returns the pooled resources in pool order.
func (p Pool) Resources() []types.Resource {
	out := make([]types.Resource, len(p.Candidates))
	for i, c := range p.Candidates {
		out[i] = c.Resource
	}
	return out
}

// Composition counts pooled resources per provider.
func (p Pool) Composition() map[providers.ID]int {
	out := map[providers.ID]int{}
	for _, c := range p.Candidates {
		out[c.Provider]++
	}
	return out
}

// Dedupe keeps the first resource per key in order and drops resources with
// neither URL nor title. Dedupe(Dedupe(x)) == Dedupe(x).
func Dedupe(in []types.Resource) []types.Resource {
	seen := make(map[string]struct{}, len(in))
	out := make([]types.Resource, 0, len(in))
	for _, r := range in {
		k := r.Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupeCandidates(in []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		k := c.Resource.Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// BuildPool applies the level recipe, de-duplicates and caps the result.
// An empty result is replaced by the fallback list.
func BuildPool(b Buckets, level types.Level) Pool {
	cands := dedupeCandidates(RecipeFor(level).Apply(b))
	if len(cands) > PoolCap {
		cands = cands[:PoolCap]
	}
	if len(cands) == 0 {
		for _, r := range fallbackResources {
			cands = append(cands, Candidate{Provider: FallbackProvider, Resource: r})
		}
		return Pool{Candidates: cands, Fallback: true}
	}
	return Pool{Candidates: cands}
}

// Partition cuts consecutive, non-overlapping ranges of perStep resources
// from pool. When the pool cannot fill every range, each step also gets the
// fallback list, de-duplicated against its own range, so no step is ever
// without a link. Provider resources never appear in two steps.
func Partition(pool []types.Resource, stepCount, perStep int) [][]types.Resource {
	short := len(pool) < stepCount*perStep
	out := make([][]types.Resource, stepCount)
	for i := range out {
		lo := i * perStep
		hi := lo + perStep
		if lo > len(pool) {
			lo = len(pool)
		}
		if hi > len(pool) {
			hi = len(pool)
		}
		set := append([]types.Resource(nil), pool[lo:hi]...)
		if short {
			set = Dedupe(append(set, fallbackResources...))
		}
		out[i] = set
	}
	return out
}
