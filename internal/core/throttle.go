package core

import "time"

// Throttle rate-limits periodic work such as progress reporting to at most
// one event per interval.
type Throttle struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewThrottle constructs a Throttle firing at most once per interval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = time.Second
	}
	return &Throttle{interval: interval, now: time.Now}
}

// SetInterval changes the minimum spacing between events.
func (t *Throttle) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	t.interval = interval
}

// Ready reports whether at least one interval elapsed since the last event.
// The first call only starts the clock.
func (t *Throttle) Ready() bool {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return false
	}
	t.accumulator += now.Sub(t.last)
	t.last = now
	if t.accumulator >= t.interval {
		t.accumulator = 0
		return true
	}
	return false
}
