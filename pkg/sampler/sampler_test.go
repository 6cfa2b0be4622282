package sampler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTarget struct {
	passes atomic.Int64
}

func (c *countingTarget) SampleAll() int {
	c.passes.Add(1)
	return 3
}

func TestSampler_TicksUntilStopped(t *testing.T) {
	tgt := &countingTarget{}
	s := New(tgt, 5*time.Millisecond, nil)

	var sampled atomic.Int64
	s.OnPass(func(n int, took time.Duration) {
		sampled.Add(int64(n))
		assert.GreaterOrEqual(t, took, time.Duration(0))
	})

	s.Start(context.Background())
	require.True(t, s.Running())

	require.Eventually(t, func() bool { return tgt.passes.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())

	// after Stop returns, no pass may run
	after := tgt.passes.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, tgt.passes.Load())
	assert.Equal(t, after*3, sampled.Load())
}

func TestSampler_StopIsIdempotent(t *testing.T) {
	s := New(&countingTarget{}, time.Millisecond, nil)
	s.Stop() // never started

	s.Start(context.Background())
	s.Start(context.Background()) // second start is a no-op
	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}

func TestSampler_ContextCancelEndsLoop(t *testing.T) {
	tgt := &countingTarget{}
	s := New(tgt, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return tgt.passes.Load() > 0 }, time.Second, time.Millisecond)
	cancel()

	// Stop still joins cleanly after the loop exited on its own
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestSampler_RestartAfterContextCancel(t *testing.T) {
	tgt := &countingTarget{}
	s := New(tgt, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return tgt.passes.Load() > 0 }, time.Second, time.Millisecond)
	cancel()

	require.Eventually(t, func() bool { return !s.Running() }, time.Second, time.Millisecond)

	before := tgt.passes.Load()
	s.Start(context.Background())
	defer s.Stop()
	require.True(t, s.Running())
	require.Eventually(t, func() bool { return tgt.passes.Load() > before }, time.Second, time.Millisecond)
}

func TestSampler_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(&countingTarget{}, 0, nil).Interval())
	assert.Equal(t, DefaultInterval, New(&countingTarget{}, -time.Second, nil).Interval())
	assert.Equal(t, time.Second, New(&countingTarget{}, time.Second, nil).Interval())
}
