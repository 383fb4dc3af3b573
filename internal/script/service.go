package script

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	TrendData *model.TrendResult `json:"trendData" binding:"required"`
	Style     string             `json:"style"`
	Length    string             `json:"length"`
}

// Handler serves the script service HTTP surface.
type Handler struct {
	generator *Generator
}

// NewHandler creates a script handler.
func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

// Register installs the script routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/generate", h.Generate)
	router.GET("/styles", h.GetStyles)
}

// Generate handles POST /generate. An empty trend set is a 400, not an
// upstream failure: there is nothing to write a script about.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if req.TrendData == nil || len(req.TrendData.Trends) == 0 {
		middleware.HandleError(c, errors.NewBadRequestError("No trend data provided"))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.TrendData.Trends[0], req.Style)
	if err != nil {
		middleware.HandleError(c, errors.NewUpstreamError("Failed to generate script", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStyles handles GET /styles.
func (h *Handler) GetStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": Styles()})
}
