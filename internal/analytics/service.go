package analytics

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
)

// TrackRequest is the body of POST /track.
type TrackRequest struct {
	VideoID     string `json:"videoId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SourceType  string `json:"sourceType"`
	SourceData  string `json:"sourceData"`
}

// MetricsRequest is the optional body of POST /videos/:videoId/metrics.
// An empty body asks the service to fetch live numbers from YouTube.
type MetricsRequest struct {
	Views            int64   `json:"views"`
	Likes            int64   `json:"likes"`
	Comments         int64   `json:"comments"`
	EstimatedRevenue float64 `json:"estimatedRevenue"`
	WatchTimeHours   float64 `json:"watchTimeHours"`
}

// Handler serves the analytics service HTTP surface.
type Handler struct {
	dao     VideoDAO
	fetcher MetricsFetcher
	poller  *Poller
	logger  *slog.Logger
}

// NewHandler creates an analytics handler.
func NewHandler(dao VideoDAO, fetcher MetricsFetcher, poller *Poller, logger *slog.Logger) *Handler {
	return &Handler{dao: dao, fetcher: fetcher, poller: poller, logger: logger}
}

// Start resumes metric polling for every video already tracked, so a
// service restart does not silently stop collection.
func (h *Handler) Start() error {
	return h.poller.Resume()
}

// Register installs the analytics routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/track", h.Track)
	router.GET("/videos", h.ListVideos)
	router.GET("/videos/:videoId", h.GetVideo)
	router.POST("/videos/:videoId/metrics", h.RefreshMetrics)
}

// Track handles POST /track: register an uploaded video and start its
// poll loop. Re-registering an id yields 409 and changes nothing.
func (h *Handler) Track(c *gin.Context) {
	var req TrackRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	video := &model.TrackedVideo{
		VideoID:     req.VideoID,
		Title:       req.Title,
		Description: req.Description,
		UploadDate:  time.Now(),
		SourceType:  req.SourceType,
		SourceData:  req.SourceData,
	}

	if err := h.dao.TrackVideo(video); err != nil {
		if stderrors.Is(err, ErrDuplicateVideo) {
			middleware.HandleError(c, errors.NewConflictError(fmt.Sprintf("Video %s is already tracked", req.VideoID)))
			return
		}
		middleware.HandleError(c, errors.NewInternalError(fmt.Sprintf("Failed to track video: %v", err)))
		return
	}

	h.poller.Start(req.VideoID)
	h.logger.Info("video tracked", "videoId", req.VideoID, "title", req.Title)
	c.JSON(http.StatusOK, video)
}

// ListVideos handles GET /videos.
func (h *Handler) ListVideos(c *gin.Context) {
	videos, err := h.dao.ListVideos()
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError(fmt.Sprintf("Failed to list videos: %v", err)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

// GetVideo handles GET /videos/:videoId, returning the video with its
// full metric history.
func (h *Handler) GetVideo(c *gin.Context) {
	videoID := c.Param("videoId")
	video, err := h.dao.GetVideo(videoID)
	if err != nil {
		if stderrors.Is(err, ErrVideoNotFound) {
			middleware.HandleError(c, errors.NewNotFoundError(fmt.Sprintf("Tracked video %s", videoID)))
			return
		}
		middleware.HandleError(c, errors.NewInternalError(fmt.Sprintf("Failed to load video: %v", err)))
		return
	}
	c.JSON(http.StatusOK, video)
}

// RefreshMetrics handles POST /videos/:videoId/metrics. A body stores
// the caller's sample; no body triggers a live YouTube fetch.
func (h *Handler) RefreshMetrics(c *gin.Context) {
	videoID := c.Param("videoId")

	var sample model.MetricSample
	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		sample = model.MetricSample{
			Date:             time.Now(),
			Views:            req.Views,
			Likes:            req.Likes,
			Comments:         req.Comments,
			EstimatedRevenue: req.EstimatedRevenue,
			WatchTimeHours:   req.WatchTimeHours,
		}
	} else {
		fetched, err := h.fetcher.FetchMetrics(c.Request.Context(), videoID)
		if err != nil {
			middleware.HandleError(c, errors.NewUpstreamError("Failed to fetch YouTube metrics", err))
			return
		}
		sample = fetched
	}

	if err := h.dao.AddMetrics(videoID, sample); err != nil {
		if stderrors.Is(err, ErrVideoNotFound) {
			middleware.HandleError(c, errors.NewNotFoundError(fmt.Sprintf("Tracked video %s", videoID)))
			return
		}
		middleware.HandleError(c, errors.NewInternalError(fmt.Sprintf("Failed to store metrics: %v", err)))
		return
	}

	c.JSON(http.StatusOK, sample)
}
