// Package frame provides "call me before the next repaint" schedulers:
// a deterministic virtual clock for offline rendering and tests, and a
// real-time ticker for live preview.
package frame

import "sync"

// Callback receives the frame timestamp in milliseconds. Timestamps are
// monotonic within one scheduler.
type Callback func(timestamp float64)

// Handle identifies a requested frame.
type Handle uint64

// Scheduler runs a callback once, at the next frame.
type Scheduler interface {
	RequestFrame(fn Callback) Handle
}

// queue holds callbacks waiting for the next frame. Callbacks requested
// while a frame is being dispatched land in the following frame.
type queue struct {
	mu      sync.Mutex
	next    Handle
	pending []entry
}

type entry struct {
	handle Handle
	fn     Callback
}

func (q *queue) push(fn Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, entry{handle: q.next, fn: fn})
	return q.next
}

func (q *queue) take() []entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}

func (q *queue) cancel(h Handle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.pending {
		if e.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func dispatch(batch []entry, ts float64) {
	for _, e := range batch {
		e.fn(ts)
	}
}
