package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"reditrend/internal/model"
)

// ImageClient is the subset of the OpenAI client used for generation.
type ImageClient interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// ImageGenerator produces section imagery through the OpenAI image API,
// falling back to a deterministic local placeholder when the API call
// fails. The fallback keeps the pipeline alive: a bad slide beats a
// dead run.
type ImageGenerator struct {
	client     ImageClient
	httpClient *http.Client
	workDir    string
	logger     *slog.Logger
}

// NewImageGenerator creates an image generator; client may be nil, in
// which case every request renders the placeholder.
func NewImageGenerator(client ImageClient, workDir string, logger *slog.Logger) *ImageGenerator {
	return &ImageGenerator{
		client:     client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		workDir:    workDir,
		logger:     logger,
	}
}

// Generate returns PNG bytes for the prompt at the given dimensions.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string, dims model.Dimensions) ([]byte, error) {
	if g.client != nil {
		data, err := g.generateRemote(ctx, prompt)
		if err == nil {
			return data, nil
		}
		g.logger.Warn("image generation failed, using placeholder", "error", err)
	}
	return g.generatePlaceholder(ctx, prompt, dims)
}

func (g *ImageGenerator) generateRemote(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:  openai.CreateImageModelDallE3,
		Prompt: prompt,
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("openai image response carried no URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resp.Data[0].URL, nil)
	if err != nil {
		return nil, err
	}
	imgResp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download generated image: %w", err)
	}
	defer imgResp.Body.Close()

	if imgResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download generated image: status %d", imgResp.StatusCode)
	}
	return io.ReadAll(imgResp.Body)
}

// generatePlaceholder renders a deterministic solid-color image with the
// prompt's leading text burned in, via ffmpeg's lavfi source.
func (g *ImageGenerator) generatePlaceholder(ctx context.Context, prompt string, dims model.Dimensions) ([]byte, error) {
	if err := os.MkdirAll(g.workDir, 0755); err != nil {
		return nil, fmt.Errorf("create image work dir: %w", err)
	}

	out, err := os.CreateTemp(g.workDir, "placeholder-*.png")
	if err != nil {
		return nil, fmt.Errorf("create placeholder file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	label := drawtextEscape(truncate(prompt, 50))
	err = runFFmpeg(ctx,
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=blue:s=%dx%d:d=1", dims.Width, dims.Height),
		"-vf", fmt.Sprintf("drawtext=text='%s...':fontcolor=white:fontsize=24:x=(w-text_w)/2:y=(h-text_h)/2", label),
		"-frames:v", "1",
		outPath,
	)
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}

	return os.ReadFile(outPath)
}

// RenderRedditCard renders a Reddit-post styled still image for the
// reddit video style.
func (g *ImageGenerator) RenderRedditCard(ctx context.Context, title, subreddit string, dims model.Dimensions) (string, error) {
	if err := os.MkdirAll(g.workDir, 0755); err != nil {
		return "", fmt.Errorf("create image work dir: %w", err)
	}
	outPath := filepath.Join(g.workDir, fmt.Sprintf("reddit-post-%s.png", CacheKey(title+subreddit, dims)[:12]))

	err := runFFmpeg(ctx,
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=white:s=%dx%d:d=1", dims.Width, dims.Height),
		"-vf", fmt.Sprintf(
			"drawtext=text='r/%s':fontcolor=blue:fontsize=32:x=20:y=20,drawtext=text='%s':fontcolor=black:fontsize=36:x=20:y=70",
			drawtextEscape(subreddit), drawtextEscape(truncate(title, 150))),
		"-frames:v", "1",
		outPath,
	)
	if err != nil {
		return "", fmt.Errorf("render reddit card: %w", err)
	}
	return outPath, nil
}

// truncate shortens s to at most n runes. Byte slicing would split
// multibyte characters in post titles before they reach drawtext.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// drawtextEscape strips characters that break ffmpeg drawtext syntax.
func drawtextEscape(s string) string {
	r := strings.NewReplacer("'", "", ":", " ", "\\", "", "%", "", ",", " ", "\n", " ")
	return r.Replace(s)
}
