package hal

import "sync"

// FrameID identifies a pending frame callback. The zero value is never issued.
type FrameID uint64

// FrameScheduler is the host's per-frame scheduling primitive: a callback
// requested now runs once, on the owning thread, at the next display refresh.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)

	// Post queues fn to run on the owning thread before the next frame's
	// callbacks. It is the only method safe to call from other goroutines.
	Post(fn func())
}

// FrameQueue is a FrameScheduler pumped by the host calling Flush once per
// tick.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending []frameReq
	posted  []func()
}

type frameReq struct {
	id FrameID
	fn func()
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	if fn == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frameReq{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *FrameQueue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.posted = append(q.posted, fn)
	q.mu.Unlock()
}

// Pending returns the number of frame callbacks waiting for the next Flush.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs posted calls, then every frame callback requested before Flush
// began. Callbacks requested while flushing wait for the next Flush.
// Flush returns the number of frame callbacks run.
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	posted := q.posted
	q.posted = nil
	q.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}
