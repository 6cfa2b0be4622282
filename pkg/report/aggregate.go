// Package report aggregates completed unit metrics into run summaries,
// compares two runs and reads/writes the JSON artifacts consumed by report
// renderers.
package report

import (
	"maps"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/system/util"
	"github.com/ja7ad/greenmeter/pkg/tracker"
	"github.com/ja7ad/greenmeter/pkg/types"
)

// ToUnit converts a tracker metric to its per-test row.
func ToUnit(m tracker.Metric) Unit {
	return Unit{
		TestID:      m.ID,
		Suite:       m.Suite,
		Outcome:     string(m.Outcome),
		DurationSec: m.DurationSec,
		CPUSec:      m.CPUSec,
		PeakWSMB:    types.ToBytes(m.PeakMemory).MB(),
		AvgWSMB:     types.MBFloat(m.AvgMemory),
		CPUJoules:   m.CPUJoules,
		MemJoules:   m.MemJoules,
		TotalJoules: m.TotalJoules,
		KWh:         m.KWh,
		CO2eGrams:   m.CO2Grams,
	}
}

// Aggregate builds the per-test rows and the run summary for label.
// cfg is recorded in the summary so it stays self-describing; meta is
// copied. Averages are 0 for an empty run.
func Aggregate(label string, metrics []tracker.Metric, cfg consumption.Config, meta map[string]any, now time.Time) ([]Unit, Summary) {
	units := make([]Unit, 0, len(metrics))
	for _, m := range metrics {
		units = append(units, ToUnit(m))
	}
	return units, Summarize(label, units, cfg, meta, now)
}

// Summarize computes a run summary from per-test rows.
func Summarize(label string, units []Unit, cfg consumption.Config, meta map[string]any, now time.Time) Summary {
	n := len(units)
	dur := make([]float64, n)
	cpu := make([]float64, n)
	joules := make([]float64, n)
	kwh := make([]float64, n)
	co2 := make([]float64, n)
	for i, u := range units {
		dur[i] = u.DurationSec
		cpu[i] = u.CPUSec
		joules[i] = u.TotalJoules
		kwh[i] = u.KWh
		co2[i] = u.CO2eGrams
	}

	s := Summary{
		RunLabel:         label,
		Tests:            n,
		DurationSecTotal: floats.Sum(dur),
		CPUSecTotal:      floats.Sum(cpu),
		TotalJoules:      floats.Sum(joules),
		TotalKWh:         floats.Sum(kwh),
		TotalCO2eGrams:   floats.Sum(co2),
		GridIntensity:    cfg.GridIntensity,
		AvgCPUWatts:      cfg.CPUWatts,
		MemWattsPerGB:    cfg.MemWattsPerGB,
		GeneratedUTC:     now.UTC(),
		Meta:             map[string]any{},
	}
	s.AvgCO2eGramsPerTest = util.SafeDiv(s.TotalCO2eGrams, float64(n))
	s.AvgJoulesPerTest = util.SafeDiv(s.TotalJoules, float64(n))
	maps.Copy(s.Meta, meta)
	return s
}
