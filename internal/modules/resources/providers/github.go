package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const defaultGitHubBase = "https://api.github.com"

type GitHubConfig struct {
	Token      string
	MaxResults int
	BaseURL    string
}

type githubProvider struct {
	log    *logger.Logger
	cfg    GitHubConfig
	client *http.Client
}

// NewGitHub searches public repositories, most starred first.
func NewGitHub(log *logger.Logger, client *http.Client, cfg GitHubConfig) Provider {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGitHubBase
	}
	return &githubProvider{log: log.With("provider", string(GitHub)), cfg: cfg, client: client}
}

func (p *githubProvider) ID() ID { return GitHub }

type githubSearchResponse struct {
	Items []struct {
		FullName    string `json:"full_name"`
		HTMLURL     string `json:"html_url"`
		Description string `json:"description"`
	} `json:"items"`
}

func (p *githubProvider) Fetch(ctx context.Context, skill string, level types.Level) []types.Resource {
	params := url.Values{}
	params.Set("q", query(skill, level.String(), "awesome list"))
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprint(p.cfg.MaxResults))

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if p.cfg.Token != "" {
		headers["Authorization"] = "Bearer " + p.cfg.Token
	}

	var body githubSearchResponse
	if err := getJSON(ctx, p.client, p.cfg.BaseURL+"/search/repositories?"+params.Encode(), headers, &body); err != nil {
		p.log.Warn("github search failed", "error", err)
		return nil
	}
	out := make([]types.Resource, 0, len(body.Items))
	for _, item := range body.Items {
		out = append(out, types.Resource{Title: item.FullName, URL: item.HTMLURL})
	}
	return bound(out, p.cfg.MaxResults)
}
