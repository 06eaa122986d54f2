package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerExpiresExactlyOnce(t *testing.T) {
	var timer phaseTimer
	var fired atomic.Int32

	timer.Start(1, nil, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		3*time.Second, 10*time.Millisecond)

	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestTimerTicksCountDown(t *testing.T) {
	var timer phaseTimer
	var mu sync.Mutex
	var ticks []int
	var expired atomic.Bool

	timer.Start(2, func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	}, func() { expired.Store(true) })

	require.Eventually(t, func() bool { return expired.Load() },
		4*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2, 1}, ticks)
}

func TestStartSupersedesRunningTimer(t *testing.T) {
	var timer phaseTimer
	var first, second atomic.Int32

	timer.Start(1, nil, func() { first.Add(1) })
	timer.Start(1, nil, func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() == 1 },
		3*time.Second, 10*time.Millisecond)

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "a superseded timer never fires")
}

func TestStopPreventsExpiry(t *testing.T) {
	var timer phaseTimer
	var fired atomic.Int32

	timer.Start(1, nil, func() { fired.Add(1) })
	timer.Stop()

	time.Sleep(1300 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	var timer phaseTimer
	timer.Stop()
	timer.Stop()
}

func TestZeroSecondsExpiresImmediately(t *testing.T) {
	var timer phaseTimer
	var fired atomic.Int32

	timer.Start(0, nil, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, time.Millisecond)
}
