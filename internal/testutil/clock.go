// Package testutil provides deterministic stand-ins for the engine's
// time and identity sources, so traces compare byte for byte across runs.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe clock that steps forward one second per call.
//
// Unlike time.Now, FixedClock can be reset for test reuse. The same scenario
// run twice with a reset clock produces identical audit timestamps.
type FixedClock struct {
	mu   sync.Mutex
	base time.Time
	tick int
}

// NewFixedClock creates a clock anchored at base.
//
// The first call to Now returns base plus one second.
func NewFixedClock(base time.Time) *FixedClock {
	return &FixedClock{base: base}
}

// Now returns the next timestamp in the sequence.
//
// It satisfies the engine's clock signature and is safe for concurrent use.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	return c.base.Add(time.Duration(c.tick) * time.Second)
}

// Reset rewinds the clock to its base.
//
// After Reset, the next call to Now returns base plus one second again.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = 0
}
