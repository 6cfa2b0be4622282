package types

import "fmt"

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// ToBytes converts a raw byte count read from /proc into Bytes.
func ToBytes(v uint64) Bytes { return Bytes(v) }

// Humanized returns a human-readable string with automatic unit (B, KB, MB, GB, TB).
func (b Bytes) Humanized() string {
	v := float64(b)
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.2f TB", v/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.2f GB", v/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MB", v/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KB", v/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// MB returns the number of megabytes (1024 base). Working-set figures in the
// per-test report are expressed in this unit.
func (b Bytes) MB() float64 { return float64(b) / (1024 * 1024) }

// MBFloat converts a fractional byte count (e.g. an average of samples) to MB.
func MBFloat(v float64) float64 { return v / (1024 * 1024) }

// GBFloat converts a fractional byte count to GB. The memory power
// coefficient is expressed per GB in this unit.
func GBFloat(v float64) float64 { return v / (1024 * 1024 * 1024) }

// FromMB converts a fractional MB figure, as stored in reports, back to
// Bytes. Negative and NaN inputs give 0.
func FromMB(v float64) Bytes {
	if !(v > 0) {
		return 0
	}
	return Bytes(v * (1024 * 1024))
}
