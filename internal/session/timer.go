package session

import (
	"sync"
	"time"
)

// ExpiryTimer is a single-shot countdown that signals an impending
// credential expiry. At most one timer is pending at a time: arming
// always cancels any prior timer first. The callback is registered once
// at construction rather than captured per arm, so rearming can never
// reference stale state.
type ExpiryTimer struct {
	onFire func()

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewExpiryTimer creates a disarmed timer with the given fire callback.
func NewExpiryTimer(onFire func()) *ExpiryTimer {
	return &ExpiryTimer{onFire: onFire}
}

// Arm schedules the callback to run once after d. Any pending timer is
// cancelled first.
func (t *ExpiryTimer) Arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.generation++
	gen := t.generation
	t.timer = time.AfterFunc(d, func() { t.fire(gen) })
}

// Disarm cancels any pending timer. Disarming an idle timer is a no-op.
func (t *ExpiryTimer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.generation++
}

// Armed reports whether a fire is pending.
func (t *ExpiryTimer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// fire runs the callback unless the timer was rearmed or disarmed after
// this fire was scheduled.
func (t *ExpiryTimer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.onFire()
}
