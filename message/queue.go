package message

import "sync"

// Queue is a per-coroutine FIFO of envelopes. Append takes ownership of
// msg and is safe to call from any goroutine (the external channel, the
// router, another coroutine's step). Get is single-consumer: only the
// scheduler draining this coroutine's queue may call it.
//
// Adapted from the producer/consumer shape of event.Stream, but unbounded
// and non-dropping: spec.md §4.F requires append to take ownership
// unconditionally, unlike Stream.Send's full-buffer rejection.
type Queue struct {
	mu    sync.Mutex
	items []*Envelope
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Append adds msg to the tail of the queue.
func (q *Queue) Append(msg *Envelope) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// Get removes and returns the head of the queue, or (nil, false) if empty.
func (q *Queue) Get() (*Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	msg := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return msg, true
}

// Len reports the number of envelopes currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue currently holds no envelopes.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}
