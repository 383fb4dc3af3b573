package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller periodically refreshes metrics for tracked videos. Each video
// gets its own goroutine and cancel function, so tracking and
// untracking individual videos never disturbs the others.
type Poller struct {
	dao      VideoDAO
	fetcher  MetricsFetcher
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewPoller creates a poller; interval is how often each video is
// refreshed.
func NewPoller(dao VideoDAO, fetcher MetricsFetcher, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		dao:      dao,
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start begins polling videoID. Starting an already polled video is a
// no-op.
func (p *Poller) Start(videoID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.cancels[videoID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancels[videoID] = cancel

	go p.poll(ctx, videoID)
	p.logger.Info("started metrics polling",
		zap.String("videoId", videoID),
		zap.Duration("interval", p.interval))
}

// Stop halts polling for videoID.
func (p *Poller) Stop(videoID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cancel, ok := p.cancels[videoID]; ok {
		cancel()
		delete(p.cancels, videoID)
		p.logger.Info("stopped metrics polling", zap.String("videoId", videoID))
	}
}

// StopAll halts every poll loop, typically at shutdown.
func (p *Poller) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for videoID, cancel := range p.cancels {
		cancel()
		delete(p.cancels, videoID)
	}
	p.logger.Info("stopped all metrics polling")
}

// Polling reports whether videoID currently has a poll loop.
func (p *Poller) Polling(videoID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cancels[videoID]
	return ok
}

// Resume starts polling for every video already in the store, used at
// service startup.
func (p *Poller) Resume() error {
	videos, err := p.dao.ListVideos()
	if err != nil {
		return err
	}
	for _, v := range videos {
		p.Start(v.VideoID)
	}
	return nil
}

func (p *Poller) poll(ctx context.Context, videoID string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx, videoID)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx, videoID)
		}
	}
}

// refresh fetches and stores one sample. A failed fetch is logged and
// retried on the next tick rather than killing the loop.
func (p *Poller) refresh(ctx context.Context, videoID string) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	sample, err := p.fetcher.FetchMetrics(fetchCtx, videoID)
	if err != nil {
		p.logger.Warn("metrics fetch failed",
			zap.String("videoId", videoID),
			zap.Error(err))
		return
	}

	if err := p.dao.AddMetrics(videoID, sample); err != nil {
		p.logger.Error("metrics store failed",
			zap.String("videoId", videoID),
			zap.Error(err))
		return
	}

	p.logger.Debug("metrics refreshed",
		zap.String("videoId", videoID),
		zap.Int64("views", sample.Views))
}
