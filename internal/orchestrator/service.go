package orchestrator

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
)

// Handler serves the orchestrator HTTP surface.
type Handler struct {
	runner   *Runner
	clients  *Clients
	registry *prometheus.Registry
}

// NewHandler creates an orchestrator handler.
func NewHandler(runner *Runner, clients *Clients, registry *prometheus.Registry) *Handler {
	return &Handler{runner: runner, clients: clients, registry: registry}
}

// Register installs the orchestrator routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/pipeline", h.RunPipeline)
	router.GET("/voices", h.Voices)
	router.GET("/providers", h.Providers)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
}

// RunPipeline handles POST /pipeline. A stage failure is reported with
// the failed stage attached so callers know how far the run got.
func (h *Handler) RunPipeline(c *gin.Context) {
	var req model.PipelineRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, stageErr := h.runner.Run(c.Request.Context(), req)
	if stageErr != nil {
		middleware.HandleError(c, stageError(stageErr))
		return
	}

	c.JSON(http.StatusOK, result)
}

// stageError wraps a stage failure as a structured error, preserving an
// upstream service error's kind and auth URL when one came through.
func stageError(stageErr *StageError) *errors.APIError {
	if apiErr, ok := stageErr.Err.(*errors.APIError); ok {
		wrapped := *apiErr
		if wrapped.Details == nil {
			wrapped.Details = make(map[string]string)
		}
		wrapped.Details["stage"] = string(stageErr.Stage)
		return &wrapped
	}

	apiErr := errors.NewUpstreamError("Pipeline stage failed", stageErr.Err)
	apiErr.Details["stage"] = string(stageErr.Stage)
	return apiErr
}

// Voices handles GET /voices, a passthrough to the voice service.
func (h *Handler) Voices(c *gin.Context) {
	data, err := h.clients.Voices(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, errors.NewUpstreamError("Failed to reach voice service", err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// Providers handles GET /providers, a passthrough to the voice service.
func (h *Handler) Providers(c *gin.Context) {
	data, err := h.clients.Providers(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, errors.NewUpstreamError("Failed to reach voice service", err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
