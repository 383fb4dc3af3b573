package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reditrend/internal/model"
)

// memoryDAO is an in-memory VideoDAO for poller tests.
type memoryDAO struct {
	mu      sync.Mutex
	videos  map[string]*model.TrackedVideo
	samples map[string][]model.MetricSample
}

func newMemoryDAO() *memoryDAO {
	return &memoryDAO{
		videos:  make(map[string]*model.TrackedVideo),
		samples: make(map[string][]model.MetricSample),
	}
}

func (m *memoryDAO) Close() error { return nil }

func (m *memoryDAO) TrackVideo(video *model.TrackedVideo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[video.VideoID]; ok {
		return ErrDuplicateVideo
	}
	m.videos[video.VideoID] = video
	return nil
}

func (m *memoryDAO) GetVideo(videoID string) (*model.TrackedVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[videoID]
	if !ok {
		return nil, ErrVideoNotFound
	}
	copied := *v
	copied.Metrics = append([]model.MetricSample(nil), m.samples[videoID]...)
	return &copied, nil
}

func (m *memoryDAO) ListVideos() ([]model.TrackedVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var videos []model.TrackedVideo
	for _, v := range m.videos {
		videos = append(videos, *v)
	}
	return videos, nil
}

func (m *memoryDAO) AddMetrics(videoID string, sample model.MetricSample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[videoID]; !ok {
		return ErrVideoNotFound
	}
	m.samples[videoID] = append(m.samples[videoID], sample)
	return nil
}

func (m *memoryDAO) sampleCount(videoID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples[videoID])
}

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *stubFetcher) FetchMetrics(ctx context.Context, videoID string) (model.MetricSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return model.MetricSample{}, f.err
	}
	return model.MetricSample{Date: time.Now(), Views: int64(f.calls * 100)}, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPoller_RefreshesImmediatelyOnStart(t *testing.T) {
	dao := newMemoryDAO()
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt1"}))

	fetcher := &stubFetcher{}
	poller := NewPoller(dao, fetcher, time.Hour, zap.NewNop())
	defer poller.StopAll()

	poller.Start("yt1")
	assert.True(t, poller.Polling("yt1"))

	// The first refresh fires before the first tick.
	waitFor(t, func() bool { return dao.sampleCount("yt1") == 1 })
}

func TestPoller_StartIsIdempotent(t *testing.T) {
	dao := newMemoryDAO()
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt1"}))

	fetcher := &stubFetcher{}
	poller := NewPoller(dao, fetcher, time.Hour, zap.NewNop())
	defer poller.StopAll()

	poller.Start("yt1")
	poller.Start("yt1")
	waitFor(t, func() bool { return fetcher.callCount() >= 1 })

	// A second Start must not spawn a second loop.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestPoller_StopHaltsOneLoop(t *testing.T) {
	dao := newMemoryDAO()
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt1"}))
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt2"}))

	fetcher := &stubFetcher{}
	poller := NewPoller(dao, fetcher, time.Hour, zap.NewNop())
	defer poller.StopAll()

	poller.Start("yt1")
	poller.Start("yt2")
	poller.Stop("yt1")

	assert.False(t, poller.Polling("yt1"))
	assert.True(t, poller.Polling("yt2"))
}

func TestPoller_Resume(t *testing.T) {
	dao := newMemoryDAO()
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt1"}))
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt2"}))

	fetcher := &stubFetcher{}
	poller := NewPoller(dao, fetcher, time.Hour, zap.NewNop())
	defer poller.StopAll()

	require.NoError(t, poller.Resume())
	assert.True(t, poller.Polling("yt1"))
	assert.True(t, poller.Polling("yt2"))
}

func TestPoller_FetchFailureKeepsLoopAlive(t *testing.T) {
	dao := newMemoryDAO()
	require.NoError(t, dao.TrackVideo(&model.TrackedVideo{VideoID: "yt1"}))

	fetcher := &stubFetcher{err: errors.New("quota exceeded")}
	poller := NewPoller(dao, fetcher, 10*time.Millisecond, zap.NewNop())
	defer poller.StopAll()

	poller.Start("yt1")

	// Failures are retried on later ticks; the loop stays registered.
	waitFor(t, func() bool { return fetcher.callCount() >= 3 })
	assert.True(t, poller.Polling("yt1"))
	assert.Equal(t, 0, dao.sampleCount("yt1"))
}
