// Package testutil provides deterministic helpers shared by reflux tests
// and the scenario harness.
package testutil

import "sync"

// Clock is a thread-safe monotonic logical clock.
//
// Dispatch traces are ordered by seq values from a Clock, never by wall
// time, so identical runs number their events identically. Reset allows the
// same clock to serve repeated runs.
type Clock struct {
	mu  sync.Mutex
	seq int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments and returns the next sequence number.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the latest issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset returns the clock to 0 for reuse across runs.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
