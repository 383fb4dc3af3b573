//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"reditrend/internal/analytics"
	"reditrend/internal/config"
	"reditrend/internal/gateway"
	"reditrend/internal/orchestrator"
	"reditrend/internal/script"
	"reditrend/internal/trends"
	"reditrend/internal/upload"
	"reditrend/internal/video"
	"reditrend/internal/voice"
)

func InitializeTrendsHandler(logger *slog.Logger) (*trends.Handler, error) {
	wire.Build(
		trends.NewRedditFetcher,
		wire.Bind(new(trends.Fetcher), new(*trends.RedditFetcher)),
		provideTrendCache,
		trends.NewHandler,
	)
	return nil, nil
}

func InitializeScriptHandler() (*script.Handler, error) {
	wire.Build(
		provideOpenAIClient,
		provideChatClient,
		script.NewGenerator,
		script.NewHandler,
	)
	return nil, nil
}

func InitializeVoiceHandler() (*voice.Handler, error) {
	wire.Build(
		provideOpenAIClient,
		provideVoiceRegistry,
		provideAudioDir,
		voice.NewHandler,
	)
	return nil, nil
}

func InitializeVideoHandler(logger *slog.Logger) (*video.Handler, error) {
	wire.Build(
		provideImageClient,
		provideImageGenerator,
		provideImageCache,
		provideMediaStore,
		provideVideoDir,
		video.NewHandler,
	)
	return nil, nil
}

func InitializeUploadHandler(logger *slog.Logger) (*upload.Handler, error) {
	wire.Build(
		provideAuthenticator,
		upload.NewUploader,
		upload.NewHandler,
	)
	return nil, nil
}

func InitializeAnalyticsHandler(logger *slog.Logger) (*analytics.Handler, func(), error) {
	wire.Build(
		provideVideoDAO,
		provideAuthenticator,
		provideMetricsFetcher,
		providePoller,
		analytics.NewHandler,
	)
	return nil, nil, nil
}

func InitializeOrchestratorHandler(services config.Services, logger *slog.Logger) *orchestrator.Handler {
	wire.Build(
		orchestrator.NewClients,
		providePrometheusRegistry,
		orchestrator.NewMetrics,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		orchestrator.NewRunner,
		orchestrator.NewHandler,
	)
	return nil
}

func InitializeGatewayHandler(services config.Services, logger *slog.Logger) *gateway.Handler {
	wire.Build(
		gateway.NewHealthChecker,
		gateway.NewHandler,
	)
	return nil
}

func InitializeAuthenticator() (*upload.Authenticator, error) {
	wire.Build(provideAuthenticator)
	return nil, nil
}

func InitializeVideoDAO() (analytics.VideoDAO, error) {
	wire.Build(provideVideoDAO)
	return nil, nil
}
