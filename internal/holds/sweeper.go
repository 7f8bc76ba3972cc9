package holds

import (
	"context"
	"time"

	"boxoffice/pkg/logger"

	"log/slog"
)

// Sweeper periodically releases expired holds. It runs opportunistically
// alongside the per-read sweep in the inventory service; both paths are
// idempotent, so overlapping sweeps are harmless.
type Sweeper struct {
	service  Service
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewSweeper(service Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is
// called. Blocks; run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	logger.GetDefault().Info("hold sweeper started",
		slog.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.GetDefault().Info("hold sweeper stopped (context cancelled)")
			return
		case <-s.stopCh:
			logger.GetDefault().Info("hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop signals the loop to exit and waits for it.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.service.SweepExpired(ctx, time.Now())
	if err != nil {
		logger.GetDefault().WithError(err).Error("hold sweep failed")
		return
	}
	if count > 0 {
		logger.GetDefault().Info("released expired holds", slog.Int("count", count))
	}
}
