package trends

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
)

// TrendsRequest is the body of POST /trends.
type TrendsRequest struct {
	Subreddits   []string        `json:"subreddits"`
	DateRange    model.DateRange `json:"dateRange"`
	SearchType   string          `json:"searchType" binding:"omitempty,oneof=hot top new rising"`
	CustomPrompt string          `json:"customPrompt"`
}

// Handler serves the trends service HTTP surface.
type Handler struct {
	fetcher Fetcher
	cache   Cache
}

// NewHandler creates a trends handler.
func NewHandler(fetcher Fetcher, cache Cache) *Handler {
	return &Handler{fetcher: fetcher, cache: cache}
}

// Register installs the trends routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/trends", h.GetTrends)
}

// GetTrends handles POST /trends: fetch, optionally filter, then rank.
func (h *Handler) GetTrends(c *gin.Context) {
	var req TrendsRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if len(req.Subreddits) == 0 {
		req.Subreddits = []string{"all"}
	}
	if req.SearchType == "" {
		req.SearchType = "hot"
	}

	ctx := c.Request.Context()
	key := CacheKey(req.Subreddits, req.DateRange, req.SearchType)

	posts, cached := h.cache.Get(ctx, key)
	if !cached {
		var err error
		posts, err = h.fetcher.FetchTrending(ctx, req.Subreddits, req.DateRange, req.SearchType)
		if err != nil {
			middleware.HandleError(c, errors.NewUpstreamError("Failed to fetch Reddit trends", err))
			return
		}
		h.cache.Set(ctx, key, posts)
	}

	if req.CustomPrompt != "" {
		posts = FilterByPrompt(posts, req.CustomPrompt)
	}

	// An empty trend set is terminal here. Forwarding it would only move
	// the failure into the script stage, which cannot act on it.
	if len(posts) == 0 {
		middleware.HandleError(c, errors.NewBadRequestError(
			fmt.Sprintf("No trending posts matched prompt %q", req.CustomPrompt)))
		return
	}

	c.JSON(http.StatusOK, model.TrendResult{
		Trends: RankPosts(posts),
		Source: model.TrendSource{
			Subreddits: req.Subreddits,
			DateRange:  req.DateRange,
			SearchType: req.SearchType,
		},
	})
}
