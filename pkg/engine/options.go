package engine

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ja7ad/greenmeter/pkg/clock"
	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/sampler"
	"github.com/ja7ad/greenmeter/pkg/tracker"
)

// Options configures an Engine.
type Options struct {
	// Config holds the model coefficients. Zero is kept; negative or
	// non-finite fields use defaults. Nil selects the defaults.
	Config *consumption.Config
	// Probe measures units opened with Start. Defaults to the current process.
	Probe tracker.Probe
	// Interval between background samples. Defaults to sampler.DefaultInterval.
	Interval time.Duration
	// Registry receives the engine metrics. Defaults to a private registry so
	// independent engines in one process do not collide.
	Registry *prometheus.Registry
	Clock    clock.Clock
	Logger   *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithConfig sets the model coefficients.
func WithConfig(cfg consumption.Config) Option {
	return func(o *Options) { o.Config = &cfg }
}

// WithProbe sets the probe used by Start.
func WithProbe(p tracker.Probe) Option {
	return func(o *Options) { o.Probe = p }
}

// WithInterval sets the background sampling interval.
func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

// WithRegistry registers the engine metrics on r instead of a private registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() Options {
	return Options{
		Interval: sampler.DefaultInterval,
		Clock:    clock.RealClock{},
		Logger:   slog.Default(),
	}
}
