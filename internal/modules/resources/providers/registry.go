package providers

import (
	"net/http"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const catalogMaxResults = 8

type Config struct {
	YouTubeAPIKey string
	RapidAPIKey   string
	GitHubToken   string
	MaxResults    int

	HTTPClient *http.Client
	Catalog    Catalog
}

// Default builds the full provider set in Order.
func Default(log *logger.Logger, cfg Config) []Provider {
	client := cfg.HTTPClient
	if client == nil {
		client = NewHTTPClient(0)
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = LoadCatalog(log)
	}

	byID := map[ID]Provider{
		YouTube: NewYouTube(log, client, YouTubeConfig{
			APIKey:      cfg.YouTubeAPIKey,
			RapidAPIKey: cfg.RapidAPIKey,
			MaxResults:  cfg.MaxResults,
		}),
		GitHub:        NewGitHub(log, client, GitHubConfig{Token: cfg.GitHubToken, MaxResults: cfg.MaxResults}),
		StackOverflow: NewStackOverflow(log, client, StackOverflowConfig{MaxResults: cfg.MaxResults}),
	}
	for _, id := range CatalogIDs {
		byID[id] = NewCatalogProvider(id, catalog, catalogMaxResults)
	}

	out := make([]Provider, 0, len(Order))
	for _, id := range Order {
		out = append(out, byID[id])
	}
	return out
}
