package steps

import (
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/providers"
)

// TakeAll keeps every resource a provider returned.
const TakeAll = -1

// RecipeEntry takes the first Take resources of one provider.
type RecipeEntry struct {
	Provider providers.ID
	Take     int
}

// Recipe is an ordered list of (provider, take) pairs.
type Recipe []RecipeEntry

var recipeTakes = map[types.Level]map[providers.ID]int{
	types.LevelBeginner: {
		providers.YouTube:       5,
		providers.MDN:           TakeAll,
		providers.W3Schools:     TakeAll,
		providers.FreeCodeCamp:  TakeAll,
		providers.GitHub:        3,
		providers.StackOverflow: 3,
		providers.Coursera:      TakeAll,
		providers.Udemy:         TakeAll,
		providers.Community:     4,
	},
	types.LevelIntermediate: {
		providers.YouTube:       4,
		providers.MDN:           TakeAll,
		providers.FreeCodeCamp:  TakeAll,
		providers.GitHub:        8,
		providers.StackOverflow: 5,
		providers.Coursera:      TakeAll,
		providers.Udemy:         TakeAll,
		providers.Community:     6,
	},
	types.LevelAdvanced: {
		providers.YouTube:       3,
		providers.MDN:           TakeAll,
		providers.GitHub:        10,
		providers.StackOverflow: 7,
		providers.Coursera:      TakeAll,
		providers.Udemy:         TakeAll,
		providers.Community:     8,
	},
}

// RecipeFor returns the level's recipe in provider order. Providers the
// level does not draw from are omitted.
func RecipeFor(level types.Level) Recipe {
	takes, ok := recipeTakes[level]
	if !ok {
		takes = recipeTakes[types.LevelBeginner]
	}
	out := make(Recipe, 0, len(providers.Order))
	for _, id := range providers.Order {
		if n, ok := takes[id]; ok && n != 0 {
			out = append(out, RecipeEntry{Provider: id, Take: n})
		}
	}
	return out
}

// Apply slices each bucket per the recipe and concatenates the slices.
func (r Recipe) Apply(b Buckets) []Candidate {
	var out []Candidate
	for _, e := range r {
		res := b[e.Provider]
		if e.Take >= 0 && e.Take < len(res) {
			res = res[:e.Take]
		}
		for _, x := range res {
			out = append(out, Candidate{Provider: e.Provider, Resource: x})
		}
	}
	return out
}
