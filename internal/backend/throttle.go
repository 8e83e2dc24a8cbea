package backend

import (
	"sync"
	"time"
)

const defaultPeriod = 250 * time.Millisecond

// throttle ensures a minimum interval between successive operations.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// ready reports whether an operation may run at now, and if so reserves the
// slot until now+interval.
func (t *throttle) ready(now time.Time) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}

// period is how often pending work should be re-checked.
func (t *throttle) period() time.Duration {
	if t == nil || t.interval <= 0 {
		return defaultPeriod
	}
	return t.interval
}
