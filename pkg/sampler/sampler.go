// Package sampler runs the periodic memory sampling pass over open units.
package sampler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the time between two sampling passes.
const DefaultInterval = 200 * time.Millisecond

// Target is sampled on every tick.
type Target interface {
	// SampleAll samples every open unit and returns how many were sampled.
	SampleAll() int
}

// Sampler drives a Target from a single background goroutine.
type Sampler struct {
	target   Target
	interval time.Duration
	log      *slog.Logger
	onPass   func(n int, took time.Duration)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped sampler. A non-positive interval selects DefaultInterval.
func New(target Target, interval time.Duration, log *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sampler{
		target:   target,
		interval: interval,
		log:      log,
	}
}

// Interval returns the effective sampling interval.
func (s *Sampler) Interval() time.Duration { return s.interval }

// OnPass registers a hook called after every pass. Must be set before Start.
func (s *Sampler) OnPass(fn func(n int, took time.Duration)) {
	s.onPass = fn
}

// Start launches the sampling goroutine. It is a no-op if already running.
// The goroutine exits when ctx is cancelled or Stop is called.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)
	s.log.Debug("sampler: started", "interval", s.interval)
}

func (s *Sampler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.release(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			n := s.target.SampleAll()
			if s.onPass != nil {
				s.onPass(n, time.Since(start))
			}
		}
	}
}

// release clears the running state when the loop that owns done exits on
// its own, so that Running reports false and Start can launch a new loop.
func (s *Sampler) release(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != done {
		return
	}
	s.cancel()
	s.cancel, s.done = nil, nil
}

// Stop cancels the goroutine and waits for it to exit. Safe to call more
// than once and on a sampler that was never started.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	<-done
	s.log.Debug("sampler: stopped")
}

// Running reports whether the goroutine is active.
func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}
