// Package playback: the Controller state machine.
package playback

import (
	"sync"

	"github.com/katalvlaran/fwviz/floydwarshall"
)

type observerEntry struct {
	id int
	fn Observer
}

// Controller plays one trace at a time. All methods are safe for concurrent use.
//
// mu guards the state; deliverMu serializes event delivery so observers see
// events one at a time and in Seq order.
type Controller struct {
	mu sync.Mutex

	clock Clock
	speed int

	trace  *floydwarshall.Trace
	cursor int
	state  State
	cause  Cause

	gen     uint64 // bumped whenever the pending timer is cancelled
	pending Timer

	seq       uint64
	queue     []Event
	observers []observerEntry
	nextObsID int
	closed    bool

	deliverMu sync.Mutex
}

// New creates an idle Controller.
func New(opts ...Option) *Controller {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Controller{clock: cfg.Clock, speed: cfg.Speed}
}

// Subscribe registers o and returns a function that removes it.
// Observers are called in subscription order.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObsID
	c.nextObsID++
	c.observers = append(c.observers, observerEntry{id: id, fn: o})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, e := range c.observers {
			if e.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Load replaces the current trace with t and moves to Ready at step 0.
// Any pending advance of the previous trace is cancelled first.
func (c *Controller) Load(t *floydwarshall.Trace) error {
	if t == nil || t.Len() == 0 {
		return ErrNoTrace
	}

	return c.apply(func() error {
		c.cancelLocked()
		c.trace = t
		c.cursor = 0
		c.state = StateReady
		c.emitLocked(CauseLoad, true)

		return nil
	})
}

// Unload drops the trace and returns to Idle. A no-op when already idle.
func (c *Controller) Unload() error {
	return c.apply(func() error {
		if c.trace == nil {
			return nil
		}
		c.cancelLocked()
		c.trace = nil
		c.cursor = 0
		c.state = StateIdle
		c.emitLocked(CauseUnload, true)

		return nil
	})
}

// Play starts automatic advance from Ready or Paused.
func (c *Controller) Play() error {
	return c.apply(func() error {
		switch c.state {
		case StateIdle:
			return ErrNoTrace
		case StateReady, StatePaused:
		default:
			return ErrIllegalTransition
		}
		c.cancelLocked()
		if c.cursor >= c.last() {
			c.state = StateFinished
		} else {
			c.state = StatePlaying
			c.scheduleLocked()
		}
		c.emitLocked(CausePlay, false)

		return nil
	})
}

// Pause stops automatic advance; only valid while Playing.
func (c *Controller) Pause() error {
	return c.apply(func() error {
		switch c.state {
		case StateIdle:
			return ErrNoTrace
		case StatePlaying:
		default:
			return ErrIllegalTransition
		}
		c.cancelLocked()
		c.state = StatePaused
		c.emitLocked(CausePause, false)

		return nil
	})
}

// Reset stops playback and returns the cursor to step 0 (Ready).
func (c *Controller) Reset() error {
	return c.apply(func() error {
		if c.trace == nil {
			return ErrNoTrace
		}
		c.cancelLocked()
		moved := c.cursor != 0
		c.cursor = 0
		c.state = StateReady
		c.emitLocked(CauseReset, moved)

		return nil
	})
}

// SkipToEnd stops playback and jumps to the last step (Finished).
func (c *Controller) SkipToEnd() error {
	return c.apply(func() error {
		if c.trace == nil {
			return ErrNoTrace
		}
		c.cancelLocked()
		last := c.last()
		moved := c.cursor != last
		c.cursor = last
		c.state = StateFinished
		c.emitLocked(CauseSkipToEnd, moved)

		return nil
	})
}

// Seek stops playback and moves the cursor to i. The resulting state is
// Ready at 0, Finished at the last step and Paused anywhere else.
func (c *Controller) Seek(i int) error {
	return c.apply(func() error { return c.seekLocked(i) })
}

// StepForward seeks one step ahead.
func (c *Controller) StepForward() error {
	return c.apply(func() error { return c.seekLocked(c.cursor + 1) })
}

// StepBack seeks one step back.
func (c *Controller) StepBack() error {
	return c.apply(func() error { return c.seekLocked(c.cursor - 1) })
}

func (c *Controller) seekLocked(i int) error {
	if c.trace == nil {
		return ErrNoTrace
	}
	if i < 0 || i >= c.trace.Len() {
		return ErrSeekOutOfRange
	}
	c.cancelLocked()
	moved := c.cursor != i
	c.cursor = i
	switch i {
	case c.last():
		c.state = StateFinished
	case 0:
		c.state = StateReady
	default:
		c.state = StatePaused
	}
	c.emitLocked(CauseSeek, moved)

	return nil
}

// SetSpeed changes the speed (clamped). While playing, the pending delay is
// restarted with the new speed.
func (c *Controller) SetSpeed(s int) {
	_ = c.apply(func() error {
		c.speed = ClampSpeed(s)
		if c.state == StatePlaying {
			c.cancelLocked()
			c.scheduleLocked()
		}

		return nil
	})
}

// Speed returns the current speed.
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speed
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Cursor returns the current step index.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cursor
}

// Current returns the latest state as an Event (Seq of the last emitted event).
func (c *Controller) Current() Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.eventLocked(c.cause, false)
}

// Close cancels any pending advance and drops all observers.
// Every later call returns ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.closed = true
	c.observers = nil
	c.queue = nil
}

// tick is the timer callback. gen is the generation the timer was scheduled in.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != StatePlaying || c.trace == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.cursor++
	if c.cursor >= c.last() {
		c.cursor = c.last()
		c.state = StateFinished
		c.gen++
	} else {
		c.cancelLocked()
		c.scheduleLocked()
	}
	c.emitLocked(CauseAdvance, true)
	c.mu.Unlock()

	c.flush()
}

// apply runs fn under the lock and then delivers the events it queued.
func (c *Controller) apply(fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	err := fn()
	c.mu.Unlock()

	c.flush()

	return err
}

// cancelLocked invalidates the pending timer. Caller holds mu.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// scheduleLocked arms the single pending timer for the current generation.
// Caller holds mu and has called cancelLocked.
func (c *Controller) scheduleLocked() {
	gen := c.gen
	c.pending = c.clock.AfterFunc(Delay(c.speed), func() { c.tick(gen) })
}

func (c *Controller) last() int {
	if c.trace == nil {
		return 0
	}

	return c.trace.Len() - 1
}

func (c *Controller) eventLocked(cause Cause, moved bool) Event {
	ev := Event{
		Seq:   c.seq,
		Cause: cause,
		State: c.state,
		Index: c.cursor,
		Moved: moved,
		Trace: c.trace,
	}
	if c.trace != nil {
		ev.Total = c.trace.Len()
		ev.Step, _ = c.trace.At(c.cursor)
	}

	return ev
}

func (c *Controller) emitLocked(cause Cause, moved bool) {
	c.seq++
	c.cause = cause
	c.queue = append(c.queue, c.eventLocked(cause, moved))
}

// flush delivers queued events. Only one goroutine delivers at a time; a
// caller that finds delivery busy (including an observer calling back into
// the controller) leaves its events to the active deliverer, which re-checks
// the queue after releasing deliverMu so nothing is stranded.
func (c *Controller) flush() {
	for {
		if !c.deliverMu.TryLock() {
			return
		}
		for {
			c.mu.Lock()
			if len(c.queue) == 0 {
				c.mu.Unlock()
				break
			}
			ev := c.queue[0]
			c.queue[0] = Event{}
			c.queue = c.queue[1:]
			obs := make([]Observer, len(c.observers))
			for i, e := range c.observers {
				obs[i] = e.fn
			}
			c.mu.Unlock()

			for _, fn := range obs {
				fn(ev)
			}
		}
		c.deliverMu.Unlock()

		c.mu.Lock()
		empty := len(c.queue) == 0
		c.mu.Unlock()
		if empty {
			return
		}
	}
}
