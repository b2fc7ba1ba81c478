// SPDX-License-Identifier: MIT

package engine

import "sync"

type subscriber struct {
	id int
	fn func(Frame)
}

// fanout numbers frames and hands them to subscribers one at a time.
// A publish issued from inside a subscriber is queued behind the frame being
// delivered instead of blocking.
type fanout struct {
	mu    sync.Mutex
	seq   uint64
	queue []Frame
	subs  []subscriber
	next  int

	deliverMu sync.Mutex
}

func (f *fanout) subscribe(fn func(Frame)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	f.subs = append(f.subs, subscriber{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// publish stamps fr with the next sequence number and delivers it.
func (f *fanout) publish(fr Frame) {
	f.mu.Lock()
	f.seq++
	fr.Seq = f.seq
	f.queue = append(f.queue, fr)
	f.mu.Unlock()

	f.drain()
}

// lastSeq returns the sequence number of the latest published frame.
func (f *fanout) lastSeq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seq
}

func (f *fanout) drain() {
	for {
		if !f.deliverMu.TryLock() {
			return
		}
		for {
			f.mu.Lock()
			if len(f.queue) == 0 {
				f.mu.Unlock()
				break
			}
			fr := f.queue[0]
			f.queue[0] = Frame{}
			f.queue = f.queue[1:]
			subs := append([]subscriber(nil), f.subs...)
			f.mu.Unlock()

			for _, s := range subs {
				s.fn(fr)
			}
		}
		f.deliverMu.Unlock()

		f.mu.Lock()
		empty := len(f.queue) == 0
		f.mu.Unlock()
		if empty {
			return
		}
	}
}
