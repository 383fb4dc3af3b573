package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"reditrend/internal/api/middleware"
)

// Config represents HTTP server configuration shared by every service
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string

	// DisableHealthRoute skips the default static /health, for services
	// that register their own (the gateway serves its dependency
	// aggregation there).
	DisableHealthRoute bool
}

// DefaultConfig returns a server config with generous timeouts.
// Video encoding responses can take minutes, so the write timeout is long.
func DefaultConfig(port string) Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
		Environment:  os.Getenv("APP_ENV"),
	}
}

// Server wraps a gin engine with the shared middleware chain and lifecycle
type Server struct {
	name       string
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// RegisterFunc installs a service's routes on the shared router
type RegisterFunc func(router *gin.Engine)

// NewServer creates a service HTTP server with the standard middleware chain
// and the /health endpoint every service must expose.
func NewServer(name string, config Config, logger *slog.Logger, register RegisterFunc) *Server {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// The gateway requires this exact body shape on every service
	if !config.DisableHealthRoute {
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": name,
			})
		})
	}

	if register != nil {
		register(router)
	}

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		name:       name,
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the server and blocks until it stops serving
func (s *Server) Start() error {
	s.logger.Info("Starting service",
		"service", s.name,
		"address", s.httpServer.Addr,
		"environment", s.config.Environment,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("service %s failed: %w", s.name, err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down service", "service", s.name)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "service", s.name, "error", err)
		return err
	}
	return nil
}

// Router returns the gin engine (useful for tests)
func (s *Server) Router() *gin.Engine {
	return s.router
}
