// Package engine ties the tracker, the background sampler and run
// aggregation into one instance with an explicit lifecycle:
//
//	eng, err := engine.New(engine.WithInterval(100 * time.Millisecond))
//	defer eng.Close()
//
//	eng.Start("pkg.TestFoo", "pkg")
//	// ... run the test ...
//	eng.End("pkg.TestFoo", tracker.Passed)
//
//	summary, err := eng.FlushTo("reports", "baseline", nil)
//
// Engines share no state, so several runs can be measured in one process.
package engine

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/report"
	"github.com/ja7ad/greenmeter/pkg/sampler"
	"github.com/ja7ad/greenmeter/pkg/system/proc"
	"github.com/ja7ad/greenmeter/pkg/tracker"
)

// Meta keys added by Flush when the caller did not set them.
const (
	MetaRunID          = "run_id"
	MetaSampleInterval = "sample_interval"
)

// Engine measures units for one run. Build it with New and release it with
// Close.
type Engine struct {
	opts     Options
	tracker  *tracker.Tracker
	sampler  *sampler.Sampler
	metrics  *collectors
	registry *prometheus.Registry

	mu        sync.Mutex
	completed []tracker.Metric
}

// New builds an engine and starts its background sampler. Call Close to
// stop it.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Probe == nil {
		o.Probe = proc.Self()
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}

	m, err := newCollectors(o.Registry)
	if err != nil {
		return nil, fmt.Errorf("engine: register metrics: %w", err)
	}

	e := &Engine{
		opts:     o,
		metrics:  m,
		registry: o.Registry,
		tracker: tracker.New(tracker.Options{
			Probe: o.Probe,
			Model: consumption.New(o.Config),
			Clock: o.Clock,
			Log:   o.Logger,
		}),
	}

	e.sampler = sampler.New(e.tracker, o.Interval, o.Logger)
	e.sampler.OnPass(func(_ int, took time.Duration) {
		m.samplePasses.Inc()
		m.samplePassTime.Observe(took.Seconds())
	})
	e.sampler.Start(context.Background())

	o.Logger.Debug("engine: started",
		"interval", e.sampler.Interval(),
		"grid_intensity", e.Config().GridIntensity,
		"cpu_watts", e.Config().CPUWatts,
		"mem_watts_per_gb", e.Config().MemWattsPerGB)

	return e, nil
}

// Config returns the coefficients used for every metric of this engine.
func (e *Engine) Config() consumption.Config { return e.tracker.Config() }

// Registry returns the registry holding the engine metrics.
func (e *Engine) Registry() *prometheus.Registry { return e.registry }

// Start opens a unit measured with the engine's probe.
func (e *Engine) Start(id, suite string) {
	e.tracker.Start(id, suite)
	e.metrics.openUnits.Set(float64(e.tracker.Open()))
}

// StartWith opens a unit measured with p, e.g. a child process tree.
func (e *Engine) StartWith(id, suite string, p tracker.Probe) {
	e.tracker.StartWith(id, suite, p)
	e.metrics.openUnits.Set(float64(e.tracker.Open()))
}

// Sample records an out-of-band memory sample for id.
func (e *Engine) Sample(id string) { e.tracker.Sample(id) }

// End closes id and queues its metric for the next Flush. The metric is
// also returned; ok is false when id was not open.
func (e *Engine) End(id string, outcome tracker.Outcome) (tracker.Metric, bool) {
	m, ok := e.tracker.End(id, outcome)
	e.metrics.openUnits.Set(float64(e.tracker.Open()))
	if !ok {
		return m, false
	}

	e.mu.Lock()
	e.completed = append(e.completed, m)
	e.mu.Unlock()

	e.metrics.completed.WithLabelValues(string(m.Outcome)).Inc()
	e.metrics.unitJoules.Observe(m.TotalJoules)
	e.metrics.unitCO2e.Observe(m.CO2Grams)
	return m, true
}

// Open returns the number of open units.
func (e *Engine) Open() int { return e.tracker.Open() }

// Pending returns the number of closed units not yet flushed.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.completed)
}

// Flush takes every closed unit queued so far and aggregates it under label.
// Units closed concurrently land either in this flush or the next one.
func (e *Engine) Flush(label string, meta map[string]any) ([]report.Unit, report.Summary) {
	e.mu.Lock()
	batch := e.completed
	e.completed = nil
	e.mu.Unlock()

	m := make(map[string]any, len(meta)+2)
	maps.Copy(m, meta)
	if _, ok := m[MetaRunID]; !ok {
		m[MetaRunID] = uuid.NewString()
	}
	if _, ok := m[MetaSampleInterval]; !ok {
		m[MetaSampleInterval] = e.sampler.Interval().String()
	}

	return report.Aggregate(label, batch, e.Config(), m, e.opts.Clock.Now())
}

// FlushTo flushes and writes <label>_tests.json and <label>_summary.json
// into dir.
func (e *Engine) FlushTo(dir, label string, meta map[string]any) (report.Summary, error) {
	units, s := e.Flush(label, meta)
	if err := report.WriteRun(dir, units, s); err != nil {
		return s, err
	}
	e.opts.Logger.Info("engine: run written",
		"label", label,
		"dir", dir,
		"tests", s.Tests,
		"total_joules", s.TotalJoules,
		"total_co2e_g", s.TotalCO2eGrams)
	return s, nil
}

// Close stops the sampler and waits for it. Units still open are dropped.
func (e *Engine) Close() error {
	e.sampler.Stop()
	if ids := e.tracker.IDs(); len(ids) > 0 {
		e.opts.Logger.Warn("engine: closing with open units, their data is dropped",
			"open", len(ids))
	}
	return nil
}
