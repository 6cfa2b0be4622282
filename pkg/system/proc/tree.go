package proc

import (
	"os"
	"sync"
)

// Tree reads the combined CPU time and resident memory of a child process
// and all of its descendants. Once the child has been reaped, call Exited so
// that later reads come from the rusage totals instead of /proc, where the
// process no longer exists.
type Tree struct {
	pid int

	mu       sync.Mutex
	exited   bool
	cpuFinal float64
	lastRSS  uint64
}

// NewTree returns a probe rooted at a started process.
func NewTree(p *os.Process) (*Tree, error) {
	if p == nil || p.Pid <= 0 {
		return nil, ErrNotStarted
	}
	return &Tree{pid: p.Pid}, nil
}

// PID returns the root process id.
func (t *Tree) PID() int { return t.pid }

// CPUSeconds returns user+system CPU time of the live tree, or the final
// rusage figure after Exited.
func (t *Tree) CPUSeconds() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return t.cpuFinal, nil
	}
	cpu, _, err := treeUsage(t.pid)
	return cpu, err
}

// MemoryBytes returns the summed RSS of the live tree. After Exited, or when
// the tree vanished between reads, the last observed value is returned.
func (t *Tree) MemoryBytes() (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return t.lastRSS, nil
	}
	_, rss, err := treeUsage(t.pid)
	if err != nil {
		if t.lastRSS > 0 {
			return t.lastRSS, nil
		}
		return 0, err
	}
	t.lastRSS = rss
	return rss, nil
}

// Exited freezes the probe at the process's final resource usage.
func (t *Tree) Exited(ps *os.ProcessState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exited = true
	if ps != nil {
		t.cpuFinal = (ps.UserTime() + ps.SystemTime()).Seconds()
	}
}
