package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

const (
	defaultRapidAPIBase = "https://yt-api.p.rapidapi.com"
	rapidAPIHost        = "yt-api.p.rapidapi.com"
	youtubeWatchURL     = "https://www.youtube.com/watch?v="
	youtubeSearchURL    = "https://www.youtube.com/results?search_query="
)

type YouTubeConfig struct {
	APIKey      string
	RapidAPIKey string
	MaxResults  int

	// RapidAPIBase and ClientOptions let tests point the adapter at a fake.
	RapidAPIBase  string
	ClientOptions []option.ClientOption
}

type youtubeProvider struct {
	log    *logger.Logger
	cfg    YouTubeConfig
	client *http.Client
}

// NewYouTube prefers the Data API, then RapidAPI, and degrades to a single
// search-results link when neither credential is configured.
func NewYouTube(log *logger.Logger, client *http.Client, cfg YouTubeConfig) Provider {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.RapidAPIBase == "" {
		cfg.RapidAPIBase = defaultRapidAPIBase
	}
	return &youtubeProvider{log: log.With("provider", string(YouTube)), cfg: cfg, client: client}
}

func (p *youtubeProvider) ID() ID { return YouTube }

func (p *youtubeProvider) Fetch(ctx context.Context, skill string, level types.Level) []types.Resource {
	q := query(skill, level.String(), "tutorial")
	switch {
	case p.cfg.APIKey != "":
		out, err := p.searchDataAPI(ctx, q)
		if err != nil {
			p.log.Warn("youtube data api search failed", "error", err)
			return nil
		}
		return out
	case p.cfg.RapidAPIKey != "":
		out, err := p.searchRapidAPI(ctx, q)
		if err != nil {
			p.log.Warn("youtube rapidapi search failed", "error", err)
			return nil
		}
		return out
	default:
		return []types.Resource{{Title: "YouTube: " + q, URL: youtubeSearchURL + escape(q)}}
	}
}

func (p *youtubeProvider) searchDataAPI(ctx context.Context, q string) ([]types.Resource, error) {
	opts := p.cfg.ClientOptions
	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithAPIKey(p.cfg.APIKey)}
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}
	resp, err := svc.Search.List([]string{"snippet"}).
		Q(q).
		Type("video").
		MaxResults(int64(p.cfg.MaxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	out := make([]types.Resource, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		title := item.Id.VideoId
		if item.Snippet != nil && item.Snippet.Title != "" {
			title = item.Snippet.Title
		}
		out = append(out, types.Resource{Title: title, URL: youtubeWatchURL + item.Id.VideoId})
	}
	return bound(out, p.cfg.MaxResults), nil
}

type rapidSearchResponse struct {
	Data []struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		VideoID string `json:"videoId"`
	} `json:"data"`
}

func (p *youtubeProvider) searchRapidAPI(ctx context.Context, q string) ([]types.Resource, error) {
	var body rapidSearchResponse
	endpoint := p.cfg.RapidAPIBase + "/search?query=" + url.QueryEscape(q)
	err := getJSON(ctx, p.client, endpoint, map[string]string{
		"x-rapidapi-key":  p.cfg.RapidAPIKey,
		"x-rapidapi-host": rapidAPIHost,
	}, &body)
	if err != nil {
		return nil, err
	}
	out := make([]types.Resource, 0, len(body.Data))
	for _, v := range body.Data {
		if v.VideoID == "" || (v.Type != "" && v.Type != "video") {
			continue
		}
		out = append(out, types.Resource{Title: v.Title, URL: youtubeWatchURL + v.VideoID})
	}
	return bound(out, p.cfg.MaxResults), nil
}
