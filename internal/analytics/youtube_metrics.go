package analytics

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"reditrend/internal/model"
	"reditrend/internal/upload"
)

// MetricsFetcher produces a current metric sample for a video.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, videoID string) (model.MetricSample, error)
}

// YouTubeMetricsFetcher reads view, like and comment counts from the
// YouTube Data API. Revenue and watch time need the Analytics API and
// channel monetization, so they stay zero here.
type YouTubeMetricsFetcher struct {
	auth *upload.Authenticator
}

// NewYouTubeMetricsFetcher creates a fetcher bound to the shared
// YouTube authenticator.
func NewYouTubeMetricsFetcher(auth *upload.Authenticator) *YouTubeMetricsFetcher {
	return &YouTubeMetricsFetcher{auth: auth}
}

// FetchMetrics returns the current statistics for videoID.
func (f *YouTubeMetricsFetcher) FetchMetrics(ctx context.Context, videoID string) (model.MetricSample, error) {
	ts, err := f.auth.TokenSource(ctx)
	if err != nil {
		return model.MetricSample{}, err
	}

	service, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return model.MetricSample{}, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	resp, err := service.Videos.List([]string{"statistics"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return model.MetricSample{}, fmt.Errorf("failed to get video statistics: %w", err)
	}
	if len(resp.Items) == 0 {
		return model.MetricSample{}, fmt.Errorf("no video found with ID: %s", videoID)
	}

	stats := resp.Items[0].Statistics
	sample := model.MetricSample{Date: time.Now()}
	if stats != nil {
		sample.Views = int64(stats.ViewCount)
		sample.Likes = int64(stats.LikeCount)
		sample.Comments = int64(stats.CommentCount)
	}
	return sample, nil
}
