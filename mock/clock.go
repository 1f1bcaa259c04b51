// Package mock provides a settable clock and assertion helpers for testing
// code built on county.
package mock

import (
	"sync/atomic"
	"time"
)

// A Clock is a manually driven clock that is safe for concurrent use. Its
// Now method can be passed wherever county takes a func() time.Time.
type Clock struct {
	nanos int64
}

// NewClock returns a Clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{nanos: start.UnixNano()}
}

// Now returns the current time of the clock in UTC.
func (c *Clock) Now() time.Time {
	return time.Unix(0, atomic.LoadInt64(&c.nanos)).UTC()
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	atomic.StoreInt64(&c.nanos, t.UnixNano())
}

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	return time.Unix(0, atomic.AddInt64(&c.nanos, int64(d))).UTC()
}

// Millis returns the current time of the clock in epoch milliseconds.
func (c *Clock) Millis() int64 {
	return atomic.LoadInt64(&c.nanos) / int64(time.Millisecond)
}
