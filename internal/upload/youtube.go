package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"reditrend/internal/model"
)

// ErrNotAuthorized signals that no YouTube token is available; callers
// surface the authorization URL alongside it.
var ErrNotAuthorized = errors.New("youtube authorization required")

const (
	defaultPrivacyStatus = "private"
	defaultCategoryID    = "24" // Entertainment
	maxTagLength         = 30
	maxTags              = 30
)

// UploadRequest describes one video to publish.
type UploadRequest struct {
	VideoFile   string   `json:"videoFile" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Privacy     string   `json:"privacy" binding:"omitempty,oneof=private unlisted public"`
	CategoryID  string   `json:"categoryId"`
}

// Uploader publishes videos through the YouTube Data API.
type Uploader struct {
	auth *Authenticator
}

// NewUploader creates an uploader bound to the authenticator.
func NewUploader(auth *Authenticator) *Uploader {
	return &Uploader{auth: auth}
}

// Upload performs a resumable upload. Progress events stream on the
// events channel when one is supplied; the channel is closed before
// Upload returns. Returns ErrNotAuthorized when no token is available.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest, events chan<- ProgressEvent) (*model.UploadResult, error) {
	if events != nil {
		defer close(events)
	}

	ts, err := u.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	service, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	file, err := os.Open(req.VideoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat video file: %w", err)
	}
	totalBytes := info.Size()

	privacy := req.Privacy
	if privacy == "" {
		privacy = defaultPrivacyStatus
	}
	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			CategoryId:  categoryID,
			Tags:        cleanTags(req.Tags),
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: privacy,
			MadeForKids:   false,
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video)
	call.NotifySubscribers(false)
	call.ProgressUpdater(func(current, total int64) {
		if total == 0 {
			total = totalBytes
		}
		notify(events, ProgressEvent{BytesSent: current, TotalBytes: total})
	})

	response, err := call.Media(file, googleapi.ChunkSize(googleapi.DefaultUploadChunkSize)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube upload failed: %w", err)
	}

	notify(events, ProgressEvent{BytesSent: totalBytes, TotalBytes: totalBytes})

	return &model.UploadResult{
		VideoID:    response.Id,
		YoutubeURL: "https://www.youtube.com/watch?v=" + response.Id,
		Title:      req.Title,
	}, nil
}

// cleanTags trims, lowercases and deduplicates tags, dropping any that
// exceed YouTube's per-tag length and capping the total count.
func cleanTags(tags []string) []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || len(t) > maxTagLength || seen[t] {
			continue
		}
		seen[t] = true
		cleaned = append(cleaned, t)
		if len(cleaned) == maxTags {
			break
		}
	}
	return cleaned
}
