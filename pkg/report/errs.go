package report

import "errors"

var (
	// ErrMissingSummary indicates a run summary file needed for a delta does not exist.
	ErrMissingSummary = errors.New("report: missing run summary")

	// ErrEmptyRun indicates a ranking was requested for a run with no units.
	ErrEmptyRun = errors.New("report: run has no units")
)
