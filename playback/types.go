// Package playback: states, events, clock and options.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/fwviz/floydwarshall"
)

// Sentinel errors returned by Controller methods.
var (
	// ErrNoTrace indicates that no trace is loaded.
	ErrNoTrace = errors.New("playback: no trace loaded")

	// ErrIllegalTransition indicates an operation not permitted in the current state.
	ErrIllegalTransition = errors.New("playback: illegal transition")

	// ErrSeekOutOfRange indicates a seek target outside the trace.
	ErrSeekOutOfRange = errors.New("playback: seek index out of range")

	// ErrClosed indicates use of a closed controller.
	ErrClosed = errors.New("playback: controller closed")
)

// State is the controller state.
type State uint8

const (
	// StateIdle: no trace.
	StateIdle State = iota
	// StateReady: trace loaded, cursor at 0, not playing.
	StateReady
	// StatePlaying: advancing on a timer.
	StatePlaying
	// StatePaused: stopped somewhere in the trace.
	StatePaused
	// StateFinished: cursor at the last step.
	StateFinished
)

var stateNames = [...]string{"idle", "ready", "playing", "paused", "finished"}

// String returns the lower-case state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", s)
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Cause says what produced an Event.
type Cause uint8

const (
	CauseLoad Cause = iota
	CauseUnload
	CausePlay
	CausePause
	CauseAdvance
	CauseReset
	CauseSkipToEnd
	CauseSeek
)

var causeNames = [...]string{"load", "unload", "play", "pause", "advance", "reset", "end", "seek"}

// String returns the lower-case cause name.
func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}

	return fmt.Sprintf("Cause(%d)", c)
}

// MarshalText encodes the cause by name.
func (c Cause) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Event is one observable change.
//
// Seq increases by one per event of a controller. Index is the cursor and
// Total the trace length (both 0 when idle). Moved is true when the cursor
// changed or a new trace was loaded. Trace is the trace the cursor points
// into; observers use it to tell traces apart.
type Event struct {
	Seq   uint64
	Cause Cause
	State State
	Index int
	Total int
	Moved bool
	Step  floydwarshall.Step
	Trace *floydwarshall.Trace
}

// Observer receives events. It runs on the goroutine that caused the change
// (or the timer goroutine) and must not block for long.
type Observer func(Event)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock returns the wall-clock Clock backed by time.AfterFunc.
func RealClock() Clock { return realClock{} }

// Speed bounds and default.
const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50
)

// ClampSpeed forces s into [MinSpeed, MaxSpeed].
func ClampSpeed(s int) int {
	switch {
	case s < MinSpeed:
		return MinSpeed
	case s > MaxSpeed:
		return MaxSpeed
	default:
		return s
	}
}

// Delay maps a speed to the pause between two automatic steps:
// higher speed, shorter delay.
func Delay(speed int) time.Duration {
	return time.Second - time.Duration(ClampSpeed(speed))*9*time.Millisecond
}

// Options configures a Controller.
type Options struct {
	Clock Clock
	Speed int
}

// Option is a functional option for New.
type Option func(*Options)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithSpeed sets the initial speed (clamped to [MinSpeed, MaxSpeed]).
func WithSpeed(s int) Option {
	return func(o *Options) { o.Speed = ClampSpeed(s) }
}

// DefaultOptions returns the wall clock and DefaultSpeed.
func DefaultOptions() Options {
	return Options{Clock: RealClock(), Speed: DefaultSpeed}
}
