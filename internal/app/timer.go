package app

import (
	"sync"
	"time"
)

// phaseTimer is a per-room countdown. A session owns exactly one:
// Start atomically replaces any running countdown, and a replaced or
// stopped countdown never fires again. The narrow window where a tick
// and a cancellation race is closed by the session's generation check
// in the callbacks.
type phaseTimer struct {
	mu     sync.Mutex
	cancel chan struct{}
}

// Start begins a countdown of the given number of seconds, superseding
// any countdown already running. onTick is invoked with the full time
// once up front and then with the remaining seconds after each elapsed
// second; onExpire is invoked at most once, when the countdown reaches
// zero.
func (t *phaseTimer) Start(seconds int, onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	if t.cancel != nil {
		close(t.cancel)
	}
	cancel := make(chan struct{})
	t.cancel = cancel
	t.mu.Unlock()

	go run(seconds, cancel, onTick, onExpire)
}

// Stop cancels the running countdown, if any
func (t *phaseTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
}

func run(seconds int, cancel chan struct{}, onTick func(int), onExpire func()) {
	if seconds <= 0 {
		select {
		case <-cancel:
		default:
			onExpire()
		}
		return
	}

	if onTick != nil {
		onTick(seconds)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				onExpire()
				return
			}
			if onTick != nil {
				onTick(remaining)
			}
		}
	}
}
