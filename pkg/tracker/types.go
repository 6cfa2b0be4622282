package tracker

import (
	"time"

	"github.com/ja7ad/greenmeter/pkg/consumption"
)

// Probe reads the resources a unit is charged for.
type Probe interface {
	// CPUSeconds is cumulative CPU time; only deltas are used.
	CPUSeconds() (float64, error)
	// MemoryBytes is the instantaneous resident memory.
	MemoryBytes() (uint64, error)
}

// Outcome is the result reported by the caller when closing a unit.
type Outcome string

const (
	Passed      Outcome = "passed"
	Failed      Outcome = "failed"
	Skipped     Outcome = "skipped"
	Unspecified Outcome = "unspecified"
)

// ParseOutcome maps free-form test framework outcomes onto Outcome.
func ParseOutcome(s string) Outcome {
	switch s {
	case "passed", "pass", "ok":
		return Passed
	case "failed", "fail", "error":
		return Failed
	case "skipped", "skip":
		return Skipped
	default:
		return Unspecified
	}
}

// Metric is the immutable record of one closed unit.
type Metric struct {
	ID      string
	Suite   string
	Outcome Outcome

	StartedAt   time.Time
	DurationSec float64
	CPUSec      float64
	PeakMemory  uint64  // bytes
	AvgMemory   float64 // bytes
	Samples     int

	consumption.Result
}
