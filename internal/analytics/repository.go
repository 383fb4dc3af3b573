package analytics

import (
	"errors"

	"reditrend/internal/model"
)

// ErrDuplicateVideo is returned when a video id is already tracked.
var ErrDuplicateVideo = errors.New("video already tracked")

// ErrVideoNotFound is returned when a video id is not tracked.
var ErrVideoNotFound = errors.New("video not tracked")

// VideoDAO persists tracked videos and their metric history.
type VideoDAO interface {
	Close() error

	TrackVideo(video *model.TrackedVideo) error

	GetVideo(videoID string) (*model.TrackedVideo, error)

	ListVideos() ([]model.TrackedVideo, error)

	AddMetrics(videoID string, sample model.MetricSample) error
}
