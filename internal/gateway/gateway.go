package gateway

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"reditrend/internal/config"
)

// Handler is the public API gateway: one aggregated health endpoint and
// prefix-routed proxies into every downstream service.
type Handler struct {
	checker  *HealthChecker
	services config.Services
	logger   *slog.Logger
}

// NewHandler creates the gateway handler.
func NewHandler(checker *HealthChecker, services config.Services, logger *slog.Logger) *Handler {
	return &Handler{checker: checker, services: services, logger: logger}
}

// Register installs the gateway routes. Unlike the other services, the
// gateway's /health is the aggregated dependency check: a monitor
// probing it sees degradation as a 503, not a static OK.
func (h *Handler) Register(router *gin.Engine) error {
	router.GET("/health", h.ServicesHealth)

	e := h.services.Endpoints
	routes := []struct {
		prefix string
		target string
	}{
		{"/api/v1/pipeline", e.Orchestrator},
		{"/api/v1/trends", e.Trends},
		{"/api/v1/script", e.Script},
		{"/api/v1/voice", e.Voice},
		{"/api/v1/video", e.Video},
		{"/api/v1/upload", e.Upload},
		{"/api/v1/analytics", e.Analytics},
	}

	for _, route := range routes {
		proxy, err := newProxy(route.target, route.prefix, h.logger)
		if err != nil {
			return err
		}
		router.Any(route.prefix, proxy)
		router.Any(route.prefix+"/*path", proxy)
	}
	return nil
}

// ServicesHealth handles GET /health: a concurrent probe of every
// downstream service. Any degradation yields 503 so load balancers and
// uptime checks see it without parsing the body.
func (h *Handler) ServicesHealth(c *gin.Context) {
	report := h.checker.CheckAll(c.Request.Context())

	status := http.StatusOK
	if report.Status != "OK" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
