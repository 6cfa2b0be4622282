// Package tracker keeps the open/close lifecycle of concurrently running
// measured units and turns each closed unit into a Metric.
package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ja7ad/greenmeter/pkg/clock"
	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/system/util"
)

const shardCount = 32

// unit is the running state of one open unit. Statistics are guarded by mu
// so that a sample racing the final read is either fully in or fully out.
type unit struct {
	id    string
	suite string
	probe Probe

	start    time.Time
	startCPU float64
	startMem uint64

	mu    sync.Mutex
	peak  uint64
	sum   float64
	count int
}

func (u *unit) observe(mem uint64) {
	u.mu.Lock()
	if mem > u.peak {
		u.peak = mem
	}
	u.sum += float64(mem)
	u.count++
	u.mu.Unlock()
}

type shard struct {
	mu    sync.RWMutex
	units map[string]*unit
}

// Tracker owns the set of open units. The map is split into shards keyed by
// a hash of the unit id so that parallel units rarely contend.
type Tracker struct {
	shards [shardCount]*shard
	probe  Probe
	model  *consumption.Model
	clock  clock.Clock
	log    *slog.Logger
}

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	// Probe is used by Start. Required unless every unit uses StartWith.
	Probe Probe
	// Model converts closed units to energy; defaults to consumption.New(nil).
	Model *consumption.Model
	Clock clock.Clock
	Log   *slog.Logger
}

// New creates an empty tracker.
func New(o Options) *Tracker {
	t := &Tracker{
		probe: o.Probe,
		model: o.Model,
		clock: o.Clock,
		log:   o.Log,
	}
	if t.model == nil {
		t.model = consumption.New(nil)
	}
	if t.clock == nil {
		t.clock = clock.RealClock{}
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	for i := range t.shards {
		t.shards[i] = &shard{units: make(map[string]*unit)}
	}
	return t
}

func (t *Tracker) shardFor(id string) *shard {
	return t.shards[xxhash.Sum64String(id)%shardCount]
}

// Config returns the coefficients used to complete metrics.
func (t *Tracker) Config() consumption.Config { return t.model.Config() }

// Start opens a unit measured with the tracker's default probe.
// Starting an id that is already open replaces the previous state.
func (t *Tracker) Start(id, suite string) {
	t.StartWith(id, suite, t.probe)
}

// StartWith opens a unit measured with p.
func (t *Tracker) StartWith(id, suite string, p Probe) {
	if p == nil {
		t.log.Debug("tracker: start without probe", "id", id)
		return
	}
	cpu, err := p.CPUSeconds()
	if err != nil {
		t.log.Debug("tracker: read start cpu", "id", id, "err", err)
	}
	mem, err := p.MemoryBytes()
	if err != nil {
		t.log.Debug("tracker: read start memory", "id", id, "err", err)
	}

	u := &unit{
		id:       id,
		suite:    suite,
		probe:    p,
		start:    t.clock.Now(),
		startCPU: cpu,
		startMem: mem,
		peak:     mem,
	}

	s := t.shardFor(id)
	s.mu.Lock()
	if _, dup := s.units[id]; dup {
		t.log.Debug("tracker: duplicate start replaces open unit", "id", id)
	}
	s.units[id] = u
	s.mu.Unlock()
}

func (t *Tracker) lookup(id string) *unit {
	s := t.shardFor(id)
	s.mu.RLock()
	u := s.units[id]
	s.mu.RUnlock()
	return u
}

// Sample records a memory snapshot for id. Unknown ids are ignored.
func (t *Tracker) Sample(id string) {
	if u := t.lookup(id); u != nil {
		t.sample(u)
	}
}

func (t *Tracker) sample(u *unit) bool {
	mem, err := u.probe.MemoryBytes()
	if err != nil {
		t.log.Debug("tracker: sample memory", "id", u.id, "err", err)
		return false
	}
	u.observe(mem)
	return true
}

// SampleAll samples every unit open at the time of the call and reports how
// many were sampled. Shard locks are released before probes are read.
func (t *Tracker) SampleAll() int {
	var n int
	for _, u := range t.snapshot() {
		if t.sample(u) {
			n++
		}
	}
	return n
}

func (t *Tracker) snapshot() []*unit {
	var out []*unit
	for _, s := range t.shards {
		s.mu.RLock()
		for _, u := range s.units {
			out = append(out, u)
		}
		s.mu.RUnlock()
	}
	return out
}

// End closes id and returns its metric. The second return is false when id
// was not open, e.g. it was already closed.
func (t *Tracker) End(id string, outcome Outcome) (Metric, bool) {
	s := t.shardFor(id)
	s.mu.Lock()
	u, ok := s.units[id]
	if ok {
		delete(s.units, id)
	}
	s.mu.Unlock()
	if !ok {
		t.log.Debug("tracker: end of unknown unit", "id", id)
		return Metric{}, false
	}

	if outcome == "" {
		outcome = Unspecified
	}

	dur := util.NonNegative(t.clock.Since(u.start).Seconds())

	var cpu float64
	if now, err := u.probe.CPUSeconds(); err == nil {
		cpu = util.NonNegative(now - u.startCPU)
	} else {
		t.log.Debug("tracker: read end cpu", "id", id, "err", err)
	}

	u.mu.Lock()
	peak, sum, count := u.peak, u.sum, u.count
	u.mu.Unlock()

	avg := float64(u.startMem)
	if count > 0 {
		avg = sum / float64(count)
	}

	return Metric{
		ID:          u.id,
		Suite:       u.suite,
		Outcome:     outcome,
		StartedAt:   u.start,
		DurationSec: dur,
		CPUSec:      cpu,
		PeakMemory:  peak,
		AvgMemory:   avg,
		Samples:     count,
		Result:      t.model.Apply(cpu, dur, avg),
	}, true
}

// Open returns the number of open units.
func (t *Tracker) Open() int {
	var n int
	for _, s := range t.shards {
		s.mu.RLock()
		n += len(s.units)
		s.mu.RUnlock()
	}
	return n
}

// IDs lists the ids of open units in no particular order.
func (t *Tracker) IDs() []string {
	units := t.snapshot()
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.id)
	}
	return ids
}
