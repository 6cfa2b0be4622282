package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	unitsSuffix   = "_tests.json"
	summarySuffix = "_summary.json"

	// DeltaFile is the name of the delta artifact inside an output directory.
	DeltaFile = "delta_summary.json"
)

// UnitsPath returns the per-test file path for label inside dir.
func UnitsPath(dir, label string) string {
	return filepath.Join(dir, label+unitsSuffix)
}

// SummaryPath returns the summary file path for label inside dir.
func SummaryPath(dir, label string) string {
	return filepath.Join(dir, label+summarySuffix)
}

// WriteRun writes the per-test and summary files of a run into dir.
func WriteRun(dir string, units []Unit, s Summary) error {
	if units == nil {
		units = []Unit{}
	}
	if err := WriteJSON(UnitsPath(dir, s.RunLabel), units); err != nil {
		return err
	}
	return WriteJSON(SummaryPath(dir, s.RunLabel), s)
}

// WriteDelta writes a delta artifact to path.
func WriteDelta(path string, d Delta) error {
	return WriteJSON(path, d)
}

// ReadSummary reads a summary file. A missing file yields ErrMissingSummary.
func ReadSummary(path string) (Summary, error) {
	var s Summary
	if err := readJSON(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Summary{}, fmt.Errorf("%w: %s", ErrMissingSummary, path)
		}
		return Summary{}, err
	}
	return s, nil
}

// ReadUnits reads a per-test file.
func ReadUnits(path string) ([]Unit, error) {
	var u []Unit
	if err := readJSON(path, &u); err != nil {
		return nil, err
	}
	return u, nil
}

// ReadDelta reads a delta file.
func ReadDelta(path string) (Delta, error) {
	var d Delta
	if err := readJSON(path, &d); err != nil {
		return Delta{}, err
	}
	return d, nil
}

// WriteJSON writes v to path as two-space indented JSON with a trailing
// newline, creating the parent directory.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: create dir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("report: read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("report: decode %s: %w", path, err)
	}
	return nil
}
