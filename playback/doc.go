// Package playback drives a recorded Floyd–Warshall trace through time.
//
// Overview:
//
//	A Controller owns a cursor into one floydwarshall.Trace and a small state
//	machine:
//
//	  Idle ──Load──▶ Ready ──Play──▶ Playing ──Pause──▶ Paused ──Play──▶ Playing
//	                   ▲                │  (auto-advance reaches last step)
//	                   │                ▼
//	                 Reset ◀────────── Finished ◀── SkipToEnd (any loaded state)
//
//	While Playing, one timer is pending at a time. When it fires the cursor
//	moves forward by exactly one step; reaching the last step moves the
//	controller to Finished. Automatic playback never skips a step.
//
// Timing:
//
//	Speed is 1..100 (default 50). The delay between steps is
//	1000ms - speed×9ms: 991ms at speed 1, 550ms at 50, 100ms at 100.
//
// Cancellation:
//
//	Every operation that stops or restarts playback (Pause, Reset, SkipToEnd,
//	Seek, Load, Unload, SetSpeed while playing, Close) first stops the pending
//	timer and bumps a generation counter, under the same lock that then changes
//	the cursor. A timer that already fired and is waiting for the lock sees a
//	stale generation and does nothing, so a reset can never be followed by a
//	stray advance, and steps of two different traces are never mixed.
//
// Events:
//
//	Every change is published as one Event carrying the cursor, the current Step
//	and the state. Events are delivered in the order the changes happened, one
//	at a time, outside the controller's lock, so observers may call back into
//	the Controller.
//
// Clock:
//
//	Timers come from a Clock; the default wraps time.AfterFunc. Tests pass a
//	manual clock to advance time deterministically.
//
// Errors (sentinel):
//
//   - ErrNoTrace:           operation needs a loaded trace.
//   - ErrIllegalTransition: operation not allowed from the current state.
//   - ErrSeekOutOfRange:    seek target outside [0, Len).
//   - ErrClosed:            controller was closed.
package playback
