package voice

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Script   string `json:"script" binding:"required"`
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
	Length   string `json:"length"`
}

// PodcastSegmentInput is one speaker turn in a podcast request.
type PodcastSegmentInput struct {
	Role string `json:"role" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// PodcastRequest is the body of POST /generate/podcast.
type PodcastRequest struct {
	Segments []PodcastSegmentInput `json:"segments" binding:"required,min=1"`
	Voices   map[string]string     `json:"voices"`
	Provider string                `json:"provider"`
	Length   string                `json:"length"`
}

// Handler serves the voice service HTTP surface.
type Handler struct {
	registry *Registry
	audioDir string
}

// NewHandler creates a voice handler writing audio under audioDir.
func NewHandler(registry *Registry, audioDir string) *Handler {
	return &Handler{registry: registry, audioDir: audioDir}
}

// Register installs the voice routes.
func (h *Handler) Register(router *gin.Engine) {
	router.POST("/generate", h.Generate)
	router.POST("/generate/podcast", h.GeneratePodcast)
	router.GET("/voices", h.GetVoices)
	router.GET("/providers", h.GetProviders)
	router.GET("/settings", h.GetSettings)
}

// Generate handles POST /generate: one voice, one audio file.
// There is no fallback voice, so a synthesis failure is fatal here.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	provider, err := h.registry.Get(req.Provider)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
		return
	}

	outputPath := filepath.Join(h.audioDir, uuid.NewString()+".mp3")
	voiceID, err := provider.Synthesize(c.Request.Context(), req.Script, req.VoiceID, outputPath)
	if err != nil {
		middleware.HandleError(c, errors.NewUpstreamError("Failed to generate voice-over", err))
		return
	}

	c.JSON(http.StatusOK, model.VoiceResult{
		AudioFile:   outputPath,
		DurationSec: EstimateDuration(req.Script),
		VoiceID:     voiceID,
	})
}

// GeneratePodcast handles POST /generate/podcast: ordered multi-speaker
// segments with a pause constant between them.
func (h *Handler) GeneratePodcast(c *gin.Context) {
	var req PodcastRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	provider, err := h.registry.Get(req.Provider)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
		return
	}

	settings := SettingsFor(req.Length)
	segments := req.Segments
	if settings.MaxSegments > 0 && len(segments) > settings.MaxSegments {
		segments = segments[:settings.MaxSegments]
	}

	results := make([]model.PodcastSegment, 0, len(segments))
	var totalDuration float64

	for i, seg := range segments {
		voiceID := req.Voices[seg.Role]
		if voiceID == "" {
			voiceID = DefaultVoices[seg.Role]
		}
		if voiceID == "" {
			voiceID = DefaultVoices["narrator"]
		}

		outputPath := filepath.Join(h.audioDir, fmt.Sprintf("%s-%03d.mp3", uuid.NewString(), i))
		usedVoice, err := provider.Synthesize(c.Request.Context(), seg.Text, voiceID, outputPath)
		if err != nil {
			middleware.HandleError(c, errors.NewUpstreamError(
				fmt.Sprintf("Failed to generate podcast segment %d", i), err))
			return
		}

		duration := EstimateDuration(seg.Text)
		totalDuration += duration

		results = append(results, model.PodcastSegment{
			Role:        seg.Role,
			AudioFile:   outputPath,
			DurationSec: duration,
			VoiceID:     usedVoice,
			PauseAfter:  settings.PauseBetween,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"segments":      results,
		"totalDuration": totalDuration,
		"settings": gin.H{
			"length":       req.Length,
			"maxSegments":  settings.MaxSegments,
			"pauseBetween": settings.PauseBetween,
		},
	})
}

// GetVoices handles GET /voices.
func (h *Handler) GetVoices(c *gin.Context) {
	voices := make(map[string][]Voice)
	for _, name := range h.registry.List() {
		if provider, err := h.registry.Get(name); err == nil {
			voices[name] = provider.Voices()
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"voices":   voices,
		"defaults": DefaultVoices,
	})
}

// GetProviders handles GET /providers.
func (h *Handler) GetProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.registry.List()})
}

// GetSettings handles GET /settings.
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings":      AllSettings(),
		"defaultVoices": DefaultVoices,
	})
}
