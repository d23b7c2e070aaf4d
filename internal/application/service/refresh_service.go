package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RefreshService periodically forces a dataset rebuild so the cache never
// serves an expired dataset to the first request after TTL expiry.
type RefreshService struct {
	datasets *DatasetService
	logger   *slog.Logger
	ticker   *time.Ticker
	done     chan struct{}
	mu       sync.Mutex
}

func NewRefreshService(datasets *DatasetService, logger *slog.Logger) *RefreshService {
	return &RefreshService{
		datasets: datasets,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop with the given interval.
func (s *RefreshService) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Stop()
	}
	s.ticker = time.NewTicker(interval)
	s.mu.Unlock()

	s.logger.Info("scheduled refresh starting", "interval", interval.String())

	go s.loop(ctx)
}

// Stop halts the refresh loop. Safe to call more than once.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Stop()
	}
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	s.logger.Info("scheduled refresh stopped")
}

func (s *RefreshService) loop(ctx context.Context) {
	s.mu.Lock()
	tick := s.ticker
	s.mu.Unlock()

	for {
		select {
		case <-tick.C:
			start := time.Now()
			if _, err := s.datasets.GetDataset(ctx, true); err != nil {
				s.logger.Error("scheduled refresh failed", "error", err, "duration", time.Since(start))
			} else {
				s.logger.Info("scheduled refresh completed", "duration", time.Since(start))
			}
		case <-s.done:
			return
		case <-ctx.Done():
			s.logger.Info("scheduled refresh cancelled by context")
			return
		}
	}
}
