//go:build linux

package proc

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTicksAndPageSize(t *testing.T) {
	// Defaults (no env overrides)
	t.Setenv("CLK_TCK", "")
	t.Setenv("PAGE_SIZE", "")
	assert.Greater(t, ClockTicks(), 0, "ClockTicks must be > 0")
	assert.Greater(t, PageSize(), 0, "PageSize must be > 0")

	// Env overrides (use weird-but-valid values)
	t.Setenv("CLK_TCK", "250")
	t.Setenv("PAGE_SIZE", "16384")
	assert.Equal(t, 250, ClockTicks())
	assert.Equal(t, 16384, PageSize())
}

func TestExists(t *testing.T) {
	assert.True(t, Exists(os.Getpid()), "current PID should exist")
	assert.False(t, Exists(999999999), "very large PID should not exist")
}

func TestParseStat(t *testing.T) {
	// comm with spaces and a closing paren inside it
	line := "4242 (my (odd) proc) S 1 4242 4242 0 -1 4194560 120 0 3 0 57 13 0 0 20 0 1 0 100 0 0"
	ut, st, err := parseStat(line)
	require.NoError(t, err)
	assert.Equal(t, uint64(57), ut)
	assert.Equal(t, uint64(13), st)

	_, _, err = parseStat("")
	assert.True(t, errors.Is(err, ErrNoStat))

	_, _, err = parseStat("4242 no-parens S 1")
	assert.True(t, errors.Is(err, ErrNoStat))

	_, _, err = parseStat("4242 (short) S 1 2 3")
	assert.True(t, errors.Is(err, ErrShortStat))

	_, _, err = parseStat("1 (x) S 1 1 1 0 -1 0 0 0 0 0 abc 13 0")
	require.Error(t, err)
}

func TestReadProcStat_Self(t *testing.T) {
	me := os.Getpid()
	ut, st, err := ReadProcStat(me)
	require.NoError(t, err)

	// burn a little CPU so counters can move
	deadline := time.Now().Add(30 * time.Millisecond)
	for x := 0; time.Now().Before(deadline); x++ {
		_ = x * x
	}

	ut2, st2, err := ReadProcStat(me)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ut2, ut)
	assert.GreaterOrEqual(t, st2, st)
}

func TestReadProcStat_NoSuchPid(t *testing.T) {
	_, _, err := ReadProcStat(999999999)
	require.Error(t, err)
}

func TestReadProcRSS_Self(t *testing.T) {
	rss, err := ReadProcRSS(os.Getpid())
	// On very minimal kernels without smaps_rollup and statm, this would fail,
	// but that’s extremely unlikely. If it does, mark as skip.
	if err != nil {
		t.Skipf("skipping: unable to read RSS for self: %v", err)
	}
	assert.Greater(t, rss, uint64(0))
}

func TestReadProcRSS_NoSuchPid(t *testing.T) {
	_, err := ReadProcRSS(999999999)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoRSS))
}

func TestReadProcChildren_NoSuchPid(t *testing.T) {
	_, err := ReadProcChildren(999999999)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoChildren))
}

func TestSelfProbe(t *testing.T) {
	p := Self()
	cpu, err := p.CPUSeconds()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cpu, 0.0)

	mem, err := p.MemoryBytes()
	if err != nil {
		t.Skipf("skipping: rss unavailable: %v", err)
	}
	assert.Greater(t, mem, uint64(0))
}

func TestTree_ChildLifecycle(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("skipping: sleep binary not found")
	}
	cmd := exec.Command(path, "0.2")
	require.NoError(t, cmd.Start())

	tree, err := NewTree(cmd.Process)
	require.NoError(t, err)
	assert.Equal(t, cmd.Process.Pid, tree.PID())
	assert.Contains(t, Descendants(tree.PID()), tree.PID())

	cpu, err := tree.CPUSeconds()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cpu, 0.0)

	rss, err := tree.MemoryBytes()
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))

	require.NoError(t, cmd.Wait())
	tree.Exited(cmd.ProcessState)

	final, err := tree.CPUSeconds()
	require.NoError(t, err)
	assert.InDelta(t, (cmd.ProcessState.UserTime() + cmd.ProcessState.SystemTime()).Seconds(), final, 1e-9)

	// memory after exit is the last live observation
	after, err := tree.MemoryBytes()
	require.NoError(t, err)
	assert.Equal(t, rss, after)
}

func TestNewTree_NotStarted(t *testing.T) {
	_, err := NewTree(nil)
	assert.True(t, errors.Is(err, ErrNotStarted))
}

func TestReadProcStat_FieldParsingWithSpacesInComm(t *testing.T) {
	// We can't rename 'comm' at runtime, so this is a smoke test on the
	// real file layout.
	b, err := os.ReadFile("/proc/self/stat")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.LastIndex(string(b), ") "), 0, "expected ') ' delimiter in /proc/self/stat")
}
