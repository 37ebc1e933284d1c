package app

import (
	"fmt"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/providers"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime/bus"
)

type Clients struct {
	EventBus  bus.Bus
	Providers []providers.Provider
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	eventBus := bus.NewNoopBus()
	if cfg.RedisAddr != "" {
		b, err := bus.NewRedisBus(log, bus.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		eventBus = b
	}

	// Resource providers
	provs := providers.Default(log, providers.Config{
		YouTubeAPIKey: cfg.YouTubeAPIKey,
		RapidAPIKey:   cfg.RapidAPIKey,
		GitHubToken:   cfg.GitHubToken,
		MaxResults:    cfg.ProviderMaxResults,
		HTTPClient:    providers.NewHTTPClient(cfg.ProviderTimeout),
	})

	return Clients{EventBus: eventBus, Providers: provs}, nil
}

func (c Clients) Close() error {
	if c.EventBus != nil {
		return c.EventBus.Close()
	}
	return nil
}
