// Package proc provides lightweight, zero-dependency process resource probes
// used by the tracker to measure a unit of work.
//
// Overview
//
//   - Probe contract (implemented by SelfProbe and Tree):
//     CPUSeconds() (float64, error)
//     MemoryBytes() (uint64, error)
//
//     CPUSeconds is cumulative and monotonic; the tracker takes deltas between
//     the start and the end of a unit. MemoryBytes is an instantaneous
//     resident set size, sampled periodically while the unit is open.
//
//   - SelfProbe: the calling process. Used when units are tests running inside
//     the measuring process.
//
//   - Tree: a child process and its descendants. Used when every unit is a
//     separate command. After the child is reaped, Exited switches CPU time to
//     the rusage totals so the final reading survives the process.
//
// # Linux
//
//   - CPU time: /proc/<pid>/stat utime+stime, in jiffies, divided by
//     ClockTicks() (CLK_TCK env override, default 100).
//   - Memory: /proc/<pid>/smaps_rollup Rss, falling back to statm resident
//     pages × PageSize().
//   - Descendants: /proc/<pid>/task/*/children, walked breadth first.
//
// # Other platforms
//
// SelfProbe falls back to runtime/metrics CPU seconds and MemStats.Sys.
// Tree reports only the rusage captured by Exited.
//
// # Errors (errs.go)
//
//	ErrNoStat     : stat file missing, empty or malformed, or tree gone
//	ErrShortStat  : stat line with fewer fields than expected
//	ErrNoRSS      : neither smaps_rollup nor statm readable
//	ErrNoChildren : no children listed for a pid
//	ErrNotStarted : Tree built for a process that was never started
package proc
