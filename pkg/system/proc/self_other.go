//go:build !linux

package proc

import (
	"runtime"
	"runtime/metrics"
)

const cpuTotalMetric = "/cpu/classes/total:cpu-seconds"

// SelfProbe reads CPU time and memory of the current process from the Go
// runtime. Without /proc, memory is the total obtained from the OS
// (MemStats.Sys) rather than a true resident set size.
type SelfProbe struct{}

// Self returns a probe for the calling process.
func Self() *SelfProbe { return &SelfProbe{} }

// CPUSeconds returns the runtime's estimate of total CPU time consumed.
func (p *SelfProbe) CPUSeconds() (float64, error) {
	s := []metrics.Sample{{Name: cpuTotalMetric}}
	metrics.Read(s)
	if s[0].Value.Kind() != metrics.KindFloat64 {
		return 0, nil
	}
	return s[0].Value.Float64(), nil
}

// MemoryBytes returns the memory obtained from the OS by the Go runtime.
func (p *SelfProbe) MemoryBytes() (uint64, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys, nil
}
