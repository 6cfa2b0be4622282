package consumption

import (
	"math"

	"github.com/ja7ad/greenmeter/pkg/types"
)

// Model converts resource usage into energy and carbon with a fixed Config.
type Model struct {
	cfg Config
}

// New creates a model with the given config. A nil cfg selects the
// defaults. Zero is a valid coefficient (e.g. a carbon-free grid); negative
// or non-finite fields fall back to their default. Start from DefaultConfig
// to override only some fields.
func New(cfg *Config) *Model {
	base := _defaultConfig()
	if cfg == nil {
		return &Model{cfg: *base}
	}

	merged := *cfg
	if !usable(merged.GridIntensity) {
		merged.GridIntensity = base.GridIntensity
	}
	if !usable(merged.CPUWatts) {
		merged.CPUWatts = base.CPUWatts
	}
	if !usable(merged.MemWattsPerGB) {
		merged.MemWattsPerGB = base.MemWattsPerGB
	}

	return &Model{cfg: merged}
}

func usable(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Config returns the effective coefficients.
func (m *Model) Config() Config { return m.cfg }

// Apply runs Compute with the model's coefficients.
func (m *Model) Apply(cpuSeconds, durationSeconds, avgMemoryBytes float64) Result {
	return Compute(cpuSeconds, durationSeconds, avgMemoryBytes, m.cfg)
}

// Compute converts a unit's CPU time and average resident memory into energy
// and carbon:
//
//	E_cpu = cpuSeconds * CPUWatts
//	E_mem = (avgMemoryBytes / 2^30) * MemWattsPerGB * durationSeconds
//	E     = E_cpu + E_mem
//	kWh   = E / 3.6e6
//	CO2e  = kWh * GridIntensity
//
// Inputs are not validated; non-finite inputs yield non-finite outputs.
func Compute(cpuSeconds, durationSeconds, avgMemoryBytes float64, cfg Config) Result {
	cpuJ := cpuSeconds * cfg.CPUWatts
	memJ := types.GBFloat(avgMemoryBytes) * cfg.MemWattsPerGB * durationSeconds
	total := cpuJ + memJ
	kwh := total / JoulesPerKWh

	return Result{
		CPUJoules:   cpuJ,
		MemJoules:   memJ,
		TotalJoules: total,
		KWh:         kwh,
		CO2Grams:    kwh * cfg.GridIntensity,
	}
}
