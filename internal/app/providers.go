package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"reditrend/internal/analytics"
	analyticspg "reditrend/internal/analytics/pg"
	analyticssqlite "reditrend/internal/analytics/sqlite"
	"reditrend/internal/config"
	"reditrend/internal/script"
	"reditrend/internal/storage"
	"reditrend/internal/trends"
	"reditrend/internal/upload"
	"reditrend/internal/video"
	"reditrend/internal/voice"
)

func provideOpenAIClient() (*openai.Client, error) {
	apiKeys, err := config.GetAPIKeys()
	if err != nil {
		return nil, err
	}
	if err := config.RequireOpenAI(apiKeys); err != nil {
		return nil, err
	}
	return openai.NewClient(apiKeys.OpenAI), nil
}

func provideChatClient(client *openai.Client) script.ChatClient {
	return client
}

// provideVoiceRegistry registers OpenAI TTS first so it is the default,
// then edge-tts when the binary is installed.
func provideVoiceRegistry(client *openai.Client) (*voice.Registry, error) {
	registry := voice.NewRegistry()

	if err := registry.Register(voice.NewOpenAIProvider(client)); err != nil {
		return nil, err
	}

	if edge, err := voice.NewEdgeTTSProvider(); err == nil {
		if err := registry.Register(edge); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// provideTrendCache uses Redis only when an address is configured.
func provideTrendCache(logger *slog.Logger) trends.Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return trends.NoopCache{}
	}

	ttl := 10 * time.Minute
	if raw := os.Getenv("TRENDS_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return trends.NewRedisCache(addr, ttl, logger)
}

func provideAudioDir() string {
	return config.GetEnvOrDefault("AUDIO_DIR", "data/audio")
}

func provideVideoDir() string {
	return config.GetEnvOrDefault("VIDEO_DIR", "data/videos")
}

// provideImageClient is nil without an API key; the generator then
// renders placeholders only.
func provideImageClient() video.ImageClient {
	apiKeys, err := config.GetAPIKeys()
	if err != nil || apiKeys.OpenAI == "" {
		return nil
	}
	return openai.NewClient(apiKeys.OpenAI)
}

func provideImageCache() (*video.AssetCache, error) {
	return video.NewAssetCache(config.GetEnvOrDefault("IMAGE_CACHE_DIR", "data/images"))
}

func provideImageGenerator(client video.ImageClient, logger *slog.Logger) *video.ImageGenerator {
	return video.NewImageGenerator(client, config.GetEnvOrDefault("IMAGE_WORK_DIR", "data/images/work"), logger)
}

// provideMediaStore uses MinIO only when an endpoint is configured.
func provideMediaStore(logger *slog.Logger) storage.MediaStore {
	if os.Getenv("MINIO_ENDPOINT") == "" {
		return storage.NewNoopStore()
	}
	store, err := storage.NewMinioStore()
	if err != nil {
		logger.Warn("object storage unavailable, keeping renders local only", "error", err)
		return storage.NewNoopStore()
	}
	return store
}

func provideAuthenticator() (*upload.Authenticator, error) {
	return upload.NewAuthenticator(
		config.GetEnvOrDefault("YOUTUBE_CREDENTIALS_FILE", "config/youtube_credentials.json"),
		config.GetEnvOrDefault("YOUTUBE_TOKEN_FILE", "data/youtube_token.json"),
		config.GetEnvOrDefault("YOUTUBE_REDIRECT_URL", "http://localhost:3005/auth/callback"),
	)
}

// provideVideoDAO selects the analytics backend: PostgreSQL when
// ANALYTICS_DB=postgres, an embedded SQLite file otherwise.
func provideVideoDAO() (analytics.VideoDAO, error) {
	if os.Getenv("ANALYTICS_DB") == "postgres" {
		db, err := analyticspg.GetConnection()
		if err != nil {
			return nil, err
		}
		return analyticspg.NewPostgresDB(db), nil
	}

	db, err := analyticssqlite.OpenDB(config.GetEnvOrDefault("ANALYTICS_DB_PATH", "data/analytics.db"))
	if err != nil {
		return nil, err
	}
	return analyticssqlite.NewSQLiteDB(db), nil
}

func provideMetricsFetcher(auth *upload.Authenticator) analytics.MetricsFetcher {
	return analytics.NewYouTubeMetricsFetcher(auth)
}

func providePoller(dao analytics.VideoDAO, fetcher analytics.MetricsFetcher) (*analytics.Poller, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	interval := 6 * time.Hour
	if raw := os.Getenv("METRICS_POLL_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			interval = parsed
		}
	}

	return analytics.NewPoller(dao, fetcher, interval, zapLogger), nil
}

func providePrometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}
