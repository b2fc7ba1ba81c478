// SPDX-License-Identifier: MIT

// Package playbacktest provides a manually driven playback.Clock for tests.
//
// Time only moves when the test calls Advance or Fire, so tests of automatic
// playback never sleep and never race the wall clock.
package playbacktest

import (
	"sync"
	"time"

	"github.com/katalvlaran/fwviz/playback"
)

// Clock is a fake playback.Clock. The zero value is not usable; use NewClock.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*Timer
}

// Timer is a callback registered with Clock.AfterFunc.
type Timer struct {
	clock   *Clock
	at      time.Duration
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewClock returns a Clock at time zero.
func NewClock() *Clock { return &Clock{} }

// AfterFunc registers f to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &Timer{clock: c, at: c.now + d, delay: d, f: f}
	c.timers = append(c.timers, t)

	return t
}

// Stop cancels the timer. It reports false if the timer already fired or was stopped.
func (t *Timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true

	return true
}

// Delay is the duration the timer was armed with.
func (t *Timer) Delay() time.Duration { return t.delay }

// Stopped reports whether Stop succeeded on t.
func (t *Timer) Stopped() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	return t.stopped
}

// Invoke runs the callback directly, even if the timer was stopped. It models
// a timer that fired concurrently with Stop.
func (t *Timer) Invoke() { t.f() }

// Advance moves the clock forward by d, running every due timer in deadline
// order. Timers armed by callbacks run too if they fall due within d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextLocked(target)
		if next == nil {
			if target > c.now {
				c.now = target
			}
			c.mu.Unlock()
			return
		}
		if next.at > c.now {
			c.now = next.at
		}
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// Fire runs the earliest pending timer regardless of its deadline.
// It reports false if nothing is pending.
func (c *Clock) Fire() bool {
	c.mu.Lock()
	next := c.nextLocked(-1)
	if next == nil {
		c.mu.Unlock()
		return false
	}
	if next.at > c.now {
		c.now = next.at
	}
	next.fired = true
	c.mu.Unlock()

	next.f()

	return true
}

// Pending returns the number of armed timers.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}

	return n
}

// Last returns the most recently armed timer, or nil.
func (c *Clock) Last() *Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.timers) == 0 {
		return nil
	}

	return c.timers[len(c.timers)-1]
}

// Now returns the elapsed fake time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// nextLocked returns the earliest live timer due at or before limit
// (any deadline when limit < 0).
func (c *Clock) nextLocked(limit time.Duration) *Timer {
	var best *Timer
	for _, t := range c.timers {
		if t.fired || t.stopped {
			continue
		}
		if limit >= 0 && t.at > limit {
			continue
		}
		if best == nil || t.at < best.at {
			best = t
		}
	}

	return best
}
