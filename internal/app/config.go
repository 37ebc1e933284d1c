package app

import (
	"time"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/modules/resources/steps"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/envutil"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	DBDriver   string
	SQLitePath string

	JWTSecretKey string
	CORSOrigins  []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	YouTubeAPIKey      string
	RapidAPIKey        string
	GitHubToken        string
	ProviderTimeout    time.Duration
	ProviderMaxResults int
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("SERVICE_NAME", "skill-sculptor"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", ""),

		DBDriver:   envutil.String("DB_DRIVER", "postgres"),
		SQLitePath: envutil.String("SQLITE_PATH", ""),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		CORSOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),

		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),
		RedisChannel:  envutil.String("REDIS_CHANNEL", ""),

		YouTubeAPIKey:      envutil.String("YOUTUBE_API_KEY", ""),
		RapidAPIKey:        envutil.String("RAPIDAPI_KEY", ""),
		GitHubToken:        envutil.String("GITHUB_TOKEN", ""),
		ProviderTimeout:    envutil.Seconds("PROVIDER_TIMEOUT_SECONDS", steps.DefaultProviderTimeout),
		ProviderMaxResults: envutil.Int("PROVIDER_MAX_RESULTS", 0),
	}
	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY is not set; every authenticated request will be rejected")
	}
	if cfg.YouTubeAPIKey == "" && cfg.RapidAPIKey == "" {
		log.Info("no YouTube credentials; YouTube resources fall back to a search link")
	}
	return cfg
}
