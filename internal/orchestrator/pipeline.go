package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"reditrend/internal/model"
)

// StageError attributes a pipeline failure to the stage that caused it.
type StageError struct {
	Stage model.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// videoDurationToLength maps the requested video duration to the voice
// length preset that caps segment count and pacing.
var videoDurationToLength = map[string]string{
	"short":    "short",
	"standard": "medium",
	"long":     "long",
}

// Runner sequences the content pipeline. Stages run strictly in order
// with no retries; a stage failure before upload aborts the run, while
// a failed analytics registration after a successful upload only
// degrades it.
type Runner struct {
	clients *Clients
	metrics *Metrics
	logger  *slog.Logger

	// OnStageComplete, when set, is called after each successful stage.
	// Used by the CLI to drive progress display.
	OnStageComplete func(stage model.Stage)
}

// NewRunner creates a pipeline runner.
func NewRunner(clients *Clients, metrics *Metrics, logger *slog.Logger) *Runner {
	return &Runner{clients: clients, metrics: metrics, logger: logger}
}

// Run executes one end-to-end pipeline. On failure the returned
// StageError names the stage that broke; partial results up to that
// stage are discarded.
func (r *Runner) Run(ctx context.Context, req model.PipelineRequest) (*model.PipelineResult, *StageError) {
	result := &model.PipelineResult{}
	start := time.Now()

	trend, err := timed(r, model.StageTrends, func() (*model.TrendResult, error) {
		return r.clients.FetchTrends(ctx, TrendsPayload{
			Subreddits:   req.Subreddits,
			DateRange:    req.DateRange,
			SearchType:   req.SearchType,
			CustomPrompt: req.CustomPrompt,
		})
	})
	if err != nil {
		return nil, r.abort(model.StageTrends, err)
	}
	result.Trend = trend

	script, err := timed(r, model.StageScript, func() (*model.ScriptResult, error) {
		return r.clients.GenerateScript(ctx, ScriptPayload{
			TrendData: trend,
			Style:     req.ScriptStyle,
			Length:    req.ScriptLength,
		})
	})
	if err != nil {
		return nil, r.abort(model.StageScript, err)
	}
	result.Script = script

	length := req.ScriptLength
	if length == "" {
		length = videoDurationToLength[req.VideoDuration]
	}

	voice, err := timed(r, model.StageVoice, func() (*model.VoiceResult, error) {
		return r.clients.GenerateVoice(ctx, VoicePayload{
			Script:   script.Script,
			Provider: req.VoiceProvider,
			VoiceID:  req.VoiceID,
			Length:   length,
		})
	})
	if err != nil {
		return nil, r.abort(model.StageVoice, err)
	}
	result.Voice = voice

	video, err := timed(r, model.StageVideo, func() (*model.VideoResult, error) {
		return r.clients.CreateVideo(ctx, VideoPayload{
			Script:    script.Script,
			AudioFile: voice.AudioFile,
			Style:     req.VideoStyle,
			Duration:  req.VideoDuration,
			Theme:     req.Theme,
			Genre:     req.Genre,
			PostTitle: script.SourceTrend.Title,
			Subreddit: script.SourceTrend.Subreddit,
		})
	})
	if err != nil {
		return nil, r.abort(model.StageVideo, err)
	}
	result.Video = video

	if !req.UploadToYoutube {
		r.metrics.PipelineRuns.WithLabelValues("success").Inc()
		r.logger.Info("pipeline completed", "duration", time.Since(start), "uploaded", false)
		return result, nil
	}

	youtube, err := timed(r, model.StageUpload, func() (*model.UploadResult, error) {
		return r.clients.UploadVideo(ctx, UploadPayload{
			VideoFile:   video.VideoFile,
			Title:       script.Title,
			Description: script.Description,
			Tags:        script.Tags,
		})
	})
	if err != nil {
		return nil, r.abort(model.StageUpload, err)
	}
	result.Youtube = youtube

	// The upload already succeeded, so a failed analytics registration
	// must not fail the run. The video exists on YouTube either way.
	_, err = timed(r, model.StageAnalytics, func() (struct{}, error) {
		return struct{}{}, r.clients.TrackVideo(ctx, TrackPayload{
			VideoID:     youtube.VideoID,
			Title:       youtube.Title,
			Description: script.Description,
			SourceType:  "reddit",
			SourceData:  script.SourceTrend.URL,
		})
	})
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("analytics tracking failed: %v", err))
		r.metrics.PipelineRuns.WithLabelValues("degraded").Inc()
		r.logger.Warn("pipeline degraded", "duration", time.Since(start), "error", err)
		return result, nil
	}

	r.metrics.PipelineRuns.WithLabelValues("success").Inc()
	r.logger.Info("pipeline completed", "duration", time.Since(start), "uploaded", true)
	return result, nil
}

func (r *Runner) abort(stage model.Stage, err error) *StageError {
	r.metrics.StageFailures.WithLabelValues(string(stage)).Inc()
	r.metrics.PipelineRuns.WithLabelValues("failed").Inc()
	r.logger.Error("pipeline aborted", "stage", stage, "error", err)
	return &StageError{Stage: stage, Err: err}
}

// timed runs one stage under its duration histogram.
func timed[T any](r *Runner, stage model.Stage, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	r.metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	if err == nil && r.OnStageComplete != nil {
		r.OnStageComplete(stage)
	}
	return result, err
}
