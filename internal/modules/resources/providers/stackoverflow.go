package providers

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const defaultStackExchangeBase = "https://api.stackexchange.com"

type StackOverflowConfig struct {
	MaxResults int
	BaseURL    string
}

type stackOverflowProvider struct {
	log    *logger.Logger
	cfg    StackOverflowConfig
	client *http.Client
}

// NewStackOverflow searches top-voted Stack Overflow questions.
func NewStackOverflow(log *logger.Logger, client *http.Client, cfg StackOverflowConfig) Provider {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultStackExchangeBase
	}
	return &stackOverflowProvider{log: log.With("provider", string(StackOverflow)), cfg: cfg, client: client}
}

func (p *stackOverflowProvider) ID() ID { return StackOverflow }

type stackExchangeResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

func (p *stackOverflowProvider) Fetch(ctx context.Context, skill string, level types.Level) []types.Resource {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "votes")
	params.Set("q", query(skill, level.String()))
	params.Set("site", "stackoverflow")
	params.Set("pagesize", fmt.Sprint(p.cfg.MaxResults))

	var body stackExchangeResponse
	if err := getJSON(ctx, p.client, p.cfg.BaseURL+"/2.3/search/advanced?"+params.Encode(), nil, &body); err != nil {
		p.log.Warn("stackexchange search failed", "error", err)
		return nil
	}
	out := make([]types.Resource, 0, len(body.Items))
	for _, item := range body.Items {
		// Titles arrive HTML-escaped.
		out = append(out, types.Resource{Title: html.UnescapeString(item.Title), URL: item.Link})
	}
	return bound(out, p.cfg.MaxResults)
}
