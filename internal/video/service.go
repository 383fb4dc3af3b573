package video

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"reditrend/internal/api/errors"
	"reditrend/internal/api/middleware"
	"reditrend/internal/model"
	"reditrend/internal/storage"
)

const maxConcurrentImages = 3

// Format dimensions. Shorts is the default because the pipeline targets
// short-form vertical video.
var formatDimensions = map[string]model.Dimensions{
	"shorts":    {Width: 1080, Height: 1920},
	"landscape": {Width: 1920, Height: 1080},
}

// CreateRequest is the body of POST /create.
type CreateRequest struct {
	Script     string `json:"script" binding:"required"`
	AudioFile  string `json:"audioFile" binding:"required"`
	Style      string `json:"style"`
	Format     string `json:"format"`
	Duration   string `json:"duration" binding:"omitempty,oneof=short standard long"`
	Transition string `json:"transition"`
	Theme      string `json:"theme"`
	Genre      string `json:"genre"`
	PostTitle  string `json:"postTitle"`
	Subreddit  string `json:"subreddit"`
}

// Handler serves the video composition endpoints.
type Handler struct {
	images    *ImageGenerator
	cache     *AssetCache
	store     storage.MediaStore
	outputDir string
	logger    *slog.Logger
}

// NewHandler creates the video handler. outputDir receives finished
// renders; scratch files live in per-job temp dirs beneath it.
func NewHandler(images *ImageGenerator, cache *AssetCache, store storage.MediaStore, outputDir string, logger *slog.Logger) *Handler {
	return &Handler{
		images:    images,
		cache:     cache,
		store:     store,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Register wires the video routes onto the router.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/create", h.Create)
	r.GET("/styles", h.Styles)
}

// Styles handles GET /styles.
func (h *Handler) Styles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": AllStyles()})
}

// Create handles POST /create: it probes the voiceover, prepares the
// style's visual assets, encodes the final file and reports the
// measured duration of the result.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if req.Style == "" {
		req.Style = StyleSlideshow
	}
	if !ValidStyle(req.Style) {
		middleware.HandleError(c, errors.NewBadRequestError(fmt.Sprintf("Unknown video style: %s", req.Style)))
		return
	}
	dims, ok := formatDimensions[req.Format]
	if !ok {
		if req.Format != "" {
			middleware.HandleError(c, errors.NewBadRequestError(fmt.Sprintf("Unknown video format: %s", req.Format)))
			return
		}
		req.Format = "shorts"
		dims = formatDimensions["shorts"]
	}
	if _, err := os.Stat(req.AudioFile); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(fmt.Sprintf("Audio file not found: %s", req.AudioFile)))
		return
	}

	result, err := h.compose(c.Request.Context(), &req, dims)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError(fmt.Sprintf("Video creation failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) compose(ctx context.Context, req *CreateRequest, dims model.Dimensions) (*model.VideoResult, error) {
	job := NewComposition()

	if err := os.MkdirAll(h.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	workDir, err := os.MkdirTemp(h.outputDir, "compose-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	// Scratch assets go regardless of outcome; the finished render is
	// written outside workDir.
	defer os.RemoveAll(workDir)

	audioDuration, err := ProbeDuration(ctx, req.AudioFile)
	if err != nil {
		job.Fail()
		return nil, fmt.Errorf("probe voiceover: %w", err)
	}

	if err := job.Advance(StateAssetsReady); err != nil {
		return nil, err
	}

	outputPath := filepath.Join(h.outputDir, fmt.Sprintf("video-%d-%s.mp4", time.Now().Unix(), uuid.New().String()[:8]))

	var args []string
	switch req.Style {
	case StyleSlideshow:
		args, err = h.prepareSlideshow(ctx, req, dims, workDir, audioDuration, outputPath)
	case StylePodcast:
		args, err = h.preparePodcast(ctx, req, dims, workDir, outputPath)
	case StyleCaptions:
		args, err = h.prepareCaptions(req, dims, workDir, audioDuration, outputPath)
	case StyleReddit:
		args, err = h.prepareReddit(ctx, req, dims, outputPath)
	}
	if err != nil {
		job.Fail()
		return nil, fmt.Errorf("prepare %s assets: %w", req.Style, err)
	}

	if err := job.Advance(StateEncoding); err != nil {
		return nil, err
	}

	duration, err := Compose(ctx, args, outputPath)
	if err != nil {
		job.Fail()
		os.Remove(outputPath)
		return nil, err
	}

	if err := job.Advance(StateDone); err != nil {
		return nil, err
	}

	result := &model.VideoResult{
		VideoFile:   outputPath,
		DurationSec: duration,
		Style:       req.Style,
		Format:      req.Format,
	}

	// Object storage is best effort; a local render is still a usable
	// pipeline result.
	if url, err := h.store.StoreFile(ctx, outputPath, "videos"); err != nil {
		h.logger.Warn("failed to persist video to object storage", "error", err)
	} else {
		result.StorageURL = url
	}

	h.logger.Info("video created",
		"style", req.Style,
		"format", req.Format,
		"duration", duration,
		"file", outputPath)
	return result, nil
}

// slideTargets maps the requested video duration to how many slides the
// slideshow aims for. The per-section budget is the audio duration
// divided by this count, so every slide gets a comparable share of the
// voiceover instead of one section swallowing the whole script.
var slideTargets = map[string]int{
	"short":    3,
	"standard": 5,
	"long":     8,
}

const defaultSlideTarget = 5

func slideBudget(audioDuration float64, duration string) float64 {
	target, ok := slideTargets[duration]
	if !ok {
		target = defaultSlideTarget
	}
	return audioDuration / float64(target)
}

// prepareSlideshow segments the script, acquires one image per section
// concurrently and builds the xfade chain. Section display times are
// rescaled so the slideshow spans the measured voiceover.
func (h *Handler) prepareSlideshow(ctx context.Context, req *CreateRequest, dims model.Dimensions, workDir string, audioDuration float64, outputPath string) ([]string, error) {
	sections := SegmentScript(req.Script, slideBudget(audioDuration, req.Duration), DefaultWordsPerMinute)
	if len(sections) == 0 {
		return nil, fmt.Errorf("script produced no sections")
	}

	var estimated float64
	for _, s := range sections {
		estimated += s.EstimatedDurationSec
	}
	scale := 1.0
	if estimated > 0 {
		scale = audioDuration / estimated
	}

	slides := make([]slideInput, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentImages)
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			prompt := BuildImagePrompt(section.Text, req.Theme, req.Genre)
			asset, err := h.cache.GetOrGenerate(prompt, dims, func() ([]byte, error) {
				return h.images.Generate(gctx, prompt, dims)
			})
			if err != nil {
				return fmt.Errorf("image for section %d: %w", i+1, err)
			}
			slides[i] = slideInput{
				ImagePath:   asset.LocalPath,
				DurationSec: section.EstimatedDurationSec * scale,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSlideshowArgs(slides, req.AudioFile, req.Transition, outputPath, dims), nil
}

func (h *Handler) preparePodcast(ctx context.Context, req *CreateRequest, dims model.Dimensions, workDir string, outputPath string) ([]string, error) {
	prompt := BuildImagePrompt(req.Script, req.Theme, req.Genre)
	asset, err := h.cache.GetOrGenerate(prompt, dims, func() ([]byte, error) {
		return h.images.Generate(ctx, prompt, dims)
	})
	if err != nil {
		return nil, fmt.Errorf("podcast background: %w", err)
	}
	return buildStillArgs(asset.LocalPath, req.AudioFile, outputPath, dims), nil
}

func (h *Handler) prepareCaptions(req *CreateRequest, dims model.Dimensions, workDir string, audioDuration float64, outputPath string) ([]string, error) {
	sentences := splitSentences(req.Script)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("script produced no sentences")
	}
	srtPath, err := WriteSRT(workDir, sentences, audioDuration)
	if err != nil {
		return nil, err
	}
	return buildCaptionsArgs(srtPath, req.AudioFile, outputPath, dims, audioDuration), nil
}

func (h *Handler) prepareReddit(ctx context.Context, req *CreateRequest, dims model.Dimensions, outputPath string) ([]string, error) {
	title := req.PostTitle
	if title == "" {
		title = firstSentenceOf(req.Script)
	}
	subreddit := req.Subreddit
	if subreddit == "" {
		subreddit = "reddit"
	}
	cardPath, err := h.images.RenderRedditCard(ctx, title, subreddit, dims)
	if err != nil {
		return nil, err
	}
	return buildStillArgs(cardPath, req.AudioFile, outputPath, dims), nil
}

func firstSentenceOf(script string) string {
	sentences := splitSentences(script)
	if len(sentences) == 0 {
		return strings.TrimSpace(script)
	}
	return strings.TrimSpace(sentences[0])
}
