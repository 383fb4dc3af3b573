package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reditrend/internal/api/server"
	"reditrend/internal/app"
	"reditrend/internal/config"
)

var configPath string

var servicePorts = map[string]string{
	"gateway":      "8000",
	"orchestrator": "3000",
	"trends":       "3001",
	"script":       "3002",
	"voice":        "3003",
	"video":        "3004",
	"upload":       "3005",
	"analytics":    "3006",
}

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config/services.yaml", "services config file")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:       "serve [service]",
	Short:     "Run one pipeline service, or all of them in one process",
	Long:      `Run one pipeline service, or all of them in one process with "serve all". Each service listens on its own port and exposes /health.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"gateway", "orchestrator", "trends", "script", "voice", "video", "upload", "analytics", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		services, err := config.LoadServices(configPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if args[0] == "all" {
			return serveAll(ctx, services, logger)
		}
		return serveOne(ctx, args[0], services, logger)
	},
}

func serveOne(ctx context.Context, name string, services config.Services, logger *slog.Logger) error {
	srv, cleanup, err := buildServer(name, portFor(name, true), services, logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveAll runs every service in one process, useful for development.
func serveAll(ctx context.Context, services config.Services, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for name := range servicePorts {
		srv, cleanup, err := buildServer(name, portFor(name, false), services, logger)
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
		g.Go(func() error {
			if cleanup != nil {
				defer cleanup()
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-gctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// portFor resolves a service's listen port. The PORT override only
// applies when running a single service; in all mode it would make
// every service fight over one socket.
func portFor(name string, allowOverride bool) string {
	if allowOverride {
		if env := os.Getenv("PORT"); env != "" {
			return env
		}
	}
	return servicePorts[name]
}

func buildServer(name string, port string, services config.Services, logger *slog.Logger) (*server.Server, func(), error) {
	if port == "" {
		return nil, nil, fmt.Errorf("unknown service %q", name)
	}
	cfg := server.DefaultConfig(port)

	var register server.RegisterFunc
	var cleanup func()

	switch name {
	case "gateway":
		cfg.DisableHealthRoute = true
		handler := app.InitializeGatewayHandler(services, logger)
		var regErr error
		register = func(router *gin.Engine) {
			regErr = handler.Register(router)
		}
		srv := server.NewServer(name, cfg, logger, register)
		if regErr != nil {
			return nil, nil, regErr
		}
		return srv, nil, nil
	case "orchestrator":
		handler := app.InitializeOrchestratorHandler(services, logger)
		register = handler.Register
	case "trends":
		handler, err := app.InitializeTrendsHandler(logger)
		if err != nil {
			return nil, nil, err
		}
		register = handler.Register
	case "script":
		handler, err := app.InitializeScriptHandler()
		if err != nil {
			return nil, nil, err
		}
		register = handler.Register
	case "voice":
		handler, err := app.InitializeVoiceHandler()
		if err != nil {
			return nil, nil, err
		}
		register = handler.Register
	case "video":
		handler, err := app.InitializeVideoHandler(logger)
		if err != nil {
			return nil, nil, err
		}
		register = handler.Register
	case "upload":
		handler, err := app.InitializeUploadHandler(logger)
		if err != nil {
			return nil, nil, err
		}
		register = handler.Register
	case "analytics":
		handler, handlerCleanup, err := app.InitializeAnalyticsHandler(logger)
		if err != nil {
			return nil, nil, err
		}
		if err := handler.Start(); err != nil {
			handlerCleanup()
			return nil, nil, err
		}
		register = handler.Register
		cleanup = handlerCleanup
	}

	return server.NewServer(name, cfg, logger, register), cleanup, nil
}
