package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reditrend/internal/api/errors"
	"reditrend/internal/config"
	"reditrend/internal/model"
)

// Clients holds typed HTTP clients for every pipeline stage service.
// Each call applies its stage's timeout on top of the caller's context.
type Clients struct {
	httpClient *http.Client
	endpoints  config.ServiceEndpoints
	timeouts   config.Timeouts
}

// NewClients builds the stage clients. The shared http.Client carries
// no timeout of its own; per-stage deadlines come from the config.
func NewClients(services config.Services) *Clients {
	return &Clients{
		httpClient: &http.Client{},
		endpoints:  services.Endpoints,
		timeouts:   services.Timeouts,
	}
}

// TrendsPayload mirrors the trends service request body.
type TrendsPayload struct {
	Subreddits   []string        `json:"subreddits"`
	DateRange    model.DateRange `json:"dateRange"`
	SearchType   string          `json:"searchType,omitempty"`
	CustomPrompt string          `json:"customPrompt,omitempty"`
}

// ScriptPayload mirrors the script service request body.
type ScriptPayload struct {
	TrendData *model.TrendResult `json:"trendData"`
	Style     string             `json:"style,omitempty"`
	Length    string             `json:"length,omitempty"`
}

// VoicePayload mirrors the voice service request body.
type VoicePayload struct {
	Script   string `json:"script"`
	Provider string `json:"provider,omitempty"`
	VoiceID  string `json:"voiceId,omitempty"`
	Length   string `json:"length,omitempty"`
}

// VideoPayload mirrors the video service request body.
type VideoPayload struct {
	Script    string `json:"script"`
	AudioFile string `json:"audioFile"`
	Style     string `json:"style,omitempty"`
	Format    string `json:"format,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Theme     string `json:"theme,omitempty"`
	Genre     string `json:"genre,omitempty"`
	PostTitle string `json:"postTitle,omitempty"`
	Subreddit string `json:"subreddit,omitempty"`
}

// UploadPayload mirrors the upload service request body.
type UploadPayload struct {
	VideoFile   string   `json:"videoFile"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TrackPayload mirrors the analytics track request body.
type TrackPayload struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
	SourceData  string `json:"sourceData,omitempty"`
}

func (c *Clients) FetchTrends(ctx context.Context, payload TrendsPayload) (*model.TrendResult, error) {
	var result model.TrendResult
	err := c.postJSON(ctx, c.endpoints.Trends+"/trends", c.timeouts.Trends, payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Clients) GenerateScript(ctx context.Context, payload ScriptPayload) (*model.ScriptResult, error) {
	var result model.ScriptResult
	err := c.postJSON(ctx, c.endpoints.Script+"/generate", c.timeouts.Script, payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Clients) GenerateVoice(ctx context.Context, payload VoicePayload) (*model.VoiceResult, error) {
	var result model.VoiceResult
	err := c.postJSON(ctx, c.endpoints.Voice+"/generate", c.timeouts.Voice, payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Clients) CreateVideo(ctx context.Context, payload VideoPayload) (*model.VideoResult, error) {
	var result model.VideoResult
	err := c.postJSON(ctx, c.endpoints.Video+"/create", c.timeouts.Video, payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Clients) UploadVideo(ctx context.Context, payload UploadPayload) (*model.UploadResult, error) {
	var result model.UploadResult
	err := c.postJSON(ctx, c.endpoints.Upload+"/upload", c.timeouts.Upload, payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Clients) TrackVideo(ctx context.Context, payload TrackPayload) error {
	return c.postJSON(ctx, c.endpoints.Analytics+"/track", c.timeouts.Analytics, payload, nil)
}

// Voices proxies the voice service catalog for the passthrough route.
func (c *Clients) Voices(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.endpoints.Voice+"/voices", c.timeouts.Health)
}

// Providers proxies the voice provider list for the passthrough route.
func (c *Clients) Providers(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.endpoints.Voice+"/providers", c.timeouts.Health)
}

// postJSON posts the payload and decodes a 2xx body into out. A non-2xx
// body is decoded as a structured service error and returned as one, so
// upstream detail such as the upload auth URL survives the hop.
func (c *Clients) postJSON(ctx context.Context, url string, timeout time.Duration, payload any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServiceError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

func (c *Clients) getJSON(ctx context.Context, url string, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeServiceError(resp)
	}

	return io.ReadAll(resp.Body)
}

func decodeServiceError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr errors.APIError
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		return &apiErr
	}
	return fmt.Errorf("service returned status %d: %s", resp.StatusCode, string(data))
}
