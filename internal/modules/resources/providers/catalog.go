package providers

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const catalogEnv = "RESOURCE_CATALOG_YAML"

//go:embed catalog.yaml
var catalogFS embed.FS

// CatalogIDs are the providers served from static link lists.
var CatalogIDs = []ID{MDN, W3Schools, FreeCodeCamp, Coursera, Udemy, Community}

// CatalogEntry is a link template. URL may contain {skill} and {query}.
type CatalogEntry struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type Catalog map[ID][]CatalogEntry

type yamlCatalog struct {
	Version   int                       `yaml:"version"`
	Providers map[string][]CatalogEntry `yaml:"providers"`
}

// fallback catalog used when YAML is missing or invalid
var fallbackCatalog = Catalog{
	MDN: {
		{Title: "MDN Web Docs", URL: "https://developer.mozilla.org/en-US/search?q={skill}"},
	},
	W3Schools: {
		{Title: "W3Schools", URL: "https://www.w3schools.com/search/?q={skill}"},
	},
	FreeCodeCamp: {
		{Title: "freeCodeCamp", URL: "https://www.freecodecamp.org/news/search/?query={skill}"},
		{Title: "freeCodeCamp Curriculum", URL: "https://www.freecodecamp.org/learn/"},
	},
	Coursera: {
		{Title: "Coursera", URL: "https://www.coursera.org/search?query={query}"},
	},
	Udemy: {
		{Title: "Udemy", URL: "https://www.udemy.com/courses/search/?q={query}"},
	},
	Community: {
		{Title: "Codecademy", URL: "https://www.codecademy.com/search?query={skill}"},
		{Title: "Dev.to", URL: "https://dev.to/search?q={skill}"},
	},
}

// LoadCatalog reads the catalog from RESOURCE_CATALOG_YAML or the embedded
// file, falling back to the compiled-in catalog on any error.
func LoadCatalog(log *logger.Logger) Catalog {
	data, err := readCatalog()
	if err == nil {
		c, perr := ParseCatalog(data)
		if perr == nil {
			return c
		}
		err = perr
	}
	if log != nil {
		log.Warn("resource catalog load failed; using fallback", "error", err)
	}
	return fallbackCatalog
}

func readCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(catalogEnv)); path != "" {
		return os.ReadFile(path)
	}
	return catalogFS.ReadFile("catalog.yaml")
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("unsupported catalog version: %d", raw.Version)
	}
	if len(raw.Providers) == 0 {
		return nil, errors.New("no providers defined")
	}
	out := Catalog{}
	for name, entries := range raw.Providers {
		id := ID(strings.ToLower(strings.TrimSpace(name)))
		if !isCatalogID(id) {
			return nil, fmt.Errorf("unknown catalog provider: %s", name)
		}
		for i, e := range entries {
			if strings.TrimSpace(e.URL) == "" {
				return nil, fmt.Errorf("%s[%d]: url is required", id, i)
			}
			if strings.TrimSpace(e.Title) == "" {
				return nil, fmt.Errorf("%s[%d]: title is required", id, i)
			}
		}
		out[id] = append([]CatalogEntry(nil), entries...)
	}
	return out, nil
}

func isCatalogID(id ID) bool {
	for _, c := range CatalogIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Render expands the entries for one provider.
func (c Catalog) Render(id ID, skill string, level types.Level) []types.Resource {
	entries := c[id]
	if len(entries) == 0 {
		return nil
	}
	r := strings.NewReplacer(
		"{skill}", escape(strings.TrimSpace(skill)),
		"{query}", escape(query(skill, level.String())),
	)
	out := make([]types.Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.Resource{Title: e.Title, URL: r.Replace(e.URL)})
	}
	return out
}

type catalogProvider struct {
	id      ID
	catalog Catalog
	max     int
}

// NewCatalogProvider serves one provider's static links. No I/O happens at
// fetch time.
func NewCatalogProvider(id ID, catalog Catalog, max int) Provider {
	return &catalogProvider{id: id, catalog: catalog, max: max}
}

func (p *catalogProvider) ID() ID { return p.id }

func (p *catalogProvider) Fetch(ctx context.Context, skill string, level types.Level) []types.Resource {
	if ctx.Err() != nil {
		return nil
	}
	return bound(p.catalog.Render(p.id, skill, level), p.max)
}
