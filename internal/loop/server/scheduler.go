package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Updater is one independently paced loop over the shared state.
type Updater struct {
	Name   string
	Period time.Duration
	// Tick performs one transition. A positive result delays the next tick
	// by that long; the wait happens after the lock is released.
	Tick func() time.Duration
}

// Scheduler drives each registered updater on its own ticker.
type Scheduler struct {
	updaters []Updater
	log      *log.Logger
}

// NewScheduler creates an empty scheduler. A nil logger discards output.
func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{log: logger}
}

// Add registers an updater. It must be called before Run.
func (s *Scheduler) Add(u Updater) {
	s.updaters = append(s.updaters, u)
}

// Run starts every updater and blocks until ctx is cancelled. Each loop
// observes cancellation between ticks and during reaction waits, so all of
// them stop within one period.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, u := range s.updaters {
		g.Go(func() error {
			return s.loop(ctx, u)
		})
	}
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, u Updater) error {
	if u.Period <= 0 {
		return fmt.Errorf("updater %q: period must be positive, got %v", u.Name, u.Period)
	}

	ticker := time.NewTicker(u.Period)
	defer ticker.Stop()

	s.log.Debug("updater started", "name", u.Name, "period", u.Period)
	defer s.log.Debug("updater stopped", "name", u.Name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if wait := u.Tick(); wait > 0 && !sleep(ctx, wait) {
			return nil
		}
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
