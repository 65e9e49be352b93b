package session

import "time"

// Backoff tracks the reconnect interval: it starts at a base value,
// doubles on each consecutive failure up to a fixed maximum, and resets
// to the base immediately after any successful connection.
type Backoff struct {
	base     time.Duration
	max      time.Duration
	interval time.Duration
}

// NewBackoff returns a backoff at its base interval.
func NewBackoff(base, max time.Duration) *Backoff {
	return &Backoff{base: base, max: max, interval: base}
}

// Interval is the wait before the next connection attempt.
func (b *Backoff) Interval() time.Duration {
	return b.interval
}

// Failure doubles the interval, capped at the maximum.
func (b *Backoff) Failure() {
	b.interval *= 2
	if b.interval > b.max {
		b.interval = b.max
	}
}

// Success resets the interval to the base value.
func (b *Backoff) Success() {
	b.interval = b.base
}
