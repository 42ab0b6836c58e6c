// Package scheduler drives the daily rollover: once at startup and then at
// every local midnight. Rollover acquires the store's own write lock, so
// it never interleaves with command-triggered mutations.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/skovlund/choreboard/internal/clock"
)

// Rollover is the store entry point the scheduler invokes.
type Rollover interface {
	DailyRollover() error
}

// Scheduler runs the rollover on a midnight timer.
type Scheduler struct {
	mu     sync.RWMutex
	store  Rollover
	clock  clock.Clock
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store Rollover, clk clock.Clock, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: store, clock: clk, logger: logger}
}

// Start runs the rollover once, then begins the midnight loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.run()

	go func() {
		defer close(s.done)
		for {
			timer := time.NewTimer(s.untilNextMidnight())
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				s.run()
			}
		}
	}()
}

// Stop cancels the loop and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) run() {
	if err := s.store.DailyRollover(); err != nil {
		s.logger.Error("daily rollover failed", "error", err)
	}
}

// untilNextMidnight returns the duration to the next local midnight, with
// a small margin so the tick lands safely inside the new day.
func (s *Scheduler) untilNextMidnight() time.Duration {
	now := s.clock.Now()
	next := clock.StartOfDay(now).AddDate(0, 0, 1)
	return next.Sub(now) + time.Second
}
