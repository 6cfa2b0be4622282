//go:build linux

package proc

import "os"

// SelfProbe reads CPU time and resident memory of the current process.
type SelfProbe struct {
	pid int
}

// Self returns a probe for the calling process.
func Self() *SelfProbe {
	return &SelfProbe{pid: os.Getpid()}
}

// CPUSeconds returns the cumulative user+system CPU time of the process.
func (p *SelfProbe) CPUSeconds() (float64, error) {
	return CPUSeconds(p.pid)
}

// MemoryBytes returns the current resident set size.
func (p *SelfProbe) MemoryBytes() (uint64, error) {
	return ReadProcRSS(p.pid)
}
