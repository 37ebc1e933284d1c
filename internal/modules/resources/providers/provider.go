package providers

import (
	"context"
	"net/url"
	"strings"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
)

// ID names a resource provider. The set is closed.
type ID string

const (
	YouTube       ID = "youtube"
	MDN           ID = "mdn"
	W3Schools     ID = "w3schools"
	FreeCodeCamp  ID = "freecodecamp"
	GitHub        ID = "github"
	StackOverflow ID = "stackoverflow"
	Coursera      ID = "coursera"
	Udemy         ID = "udemy"
	Community     ID = "community"
)

// Order is the concatenation order used when building a resource pool.
var Order = []ID{YouTube, MDN, W3Schools, FreeCodeCamp, GitHub, StackOverflow, Coursera, Udemy, Community}

func (id ID) String() string { return string(id) }

// Known reports whether id is part of the closed provider set.
func Known(id ID) bool {
	for _, o := range Order {
		if o == id {
			return true
		}
	}
	return false
}

// Provider turns a (skill, level) pair into resources from one source.
// Fetch never fails: transport, status and decode errors all surface as an
// empty slice. Implementations respect ctx and bound their own result size.
type Provider interface {
	ID() ID
	Fetch(ctx context.Context, skill string, level types.Level) []types.Resource
}

const DefaultMaxResults = 6

// bound drops resources without a URL and truncates to max.
func bound(in []types.Resource, max int) []types.Resource {
	out := make([]types.Resource, 0, len(in))
	for _, r := range in {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		out = append(out, r)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// escape percent-encodes q for use inside a query string, spaces as %20.
func escape(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

func query(parts ...string) string {
	clean := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, " ")
}
