package upload

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
)

// Handler serves the upload service HTTP surface.
type Handler struct {
	uploader *Uploader
	auth     *Authenticator
	logger   *slog.Logger
}

// NewHandler creates an upload handler.
func NewHandler(uploader *Uploader, auth *Authenticator, logger *slog.Logger) *Handler {
	return &Handler{uploader: uploader, auth: auth, logger: logger}
}

// Register installs the upload routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/upload", h.Upload)
	router.GET("/auth/status", h.AuthStatus)
	router.GET("/auth/url", h.AuthURL)
	router.GET("/auth/callback", h.AuthCallback)
}

// Upload handles POST /upload. When no token is on hand the response is
// a 401 that carries the authorization URL so the caller can complete
// the consent flow and retry.
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if _, err := os.Stat(req.VideoFile); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(fmt.Sprintf("Video file not found: %s", req.VideoFile)))
		return
	}

	if !h.auth.Authorized() {
		middleware.HandleError(c, errors.NewUnauthorizedError("YouTube authorization required", h.auth.AuthURL()))
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), req, nil)
	if err != nil {
		if stderrors.Is(err, ErrNotAuthorized) {
			middleware.HandleError(c, errors.NewUnauthorizedError("YouTube authorization required", h.auth.AuthURL()))
			return
		}
		middleware.HandleError(c, errors.NewUpstreamError("YouTube upload failed", err))
		return
	}

	h.logger.Info("video uploaded", "videoId", result.VideoID, "title", result.Title)
	c.JSON(http.StatusOK, result)
}

// AuthStatus handles GET /auth/status.
func (h *Handler) AuthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authorized": h.auth.Authorized()})
}

// AuthURL handles GET /auth/url.
func (h *Handler) AuthURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authUrl": h.auth.AuthURL()})
}

// AuthCallback handles GET /auth/callback, the OAuth redirect target.
func (h *Handler) AuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		middleware.HandleError(c, errors.NewBadRequestError("Missing authorization code"))
		return
	}

	if err := h.auth.Exchange(c.Request.Context(), code); err != nil {
		middleware.HandleError(c, errors.NewUpstreamError("Authorization exchange failed", err))
		return
	}

	h.logger.Info("youtube authorization completed")
	c.JSON(http.StatusOK, gin.H{"message": "Authorization complete. You can close this window."})
}
