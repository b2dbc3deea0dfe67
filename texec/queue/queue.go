/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package queue implements a bounded, thread-safe FIFO of opaque values
// with a closable lifecycle and both try (non-blocking) and blocking
// push/pop operations.
//
// The design is the classical monitor pattern: one mutex, two condition
// variables (notFull, notEmpty). It generalizes the cond-var plumbing the
// teacher's workerPoolTaskQueue uses (botobag/artemis/concurrent) from an
// unbounded intrusive linked list to a fixed-capacity ring buffer, per
// _examples/original_source/src/ringbuf.c.
package queue

import (
	"sync"

	"github.com/texec/texec"
)

// Queue is a bounded FIFO of opaque values. A nil value may be pushed; the
// queue does not interpret its contents.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf    []interface{}
	head   int
	count  int
	closed bool
}

// New creates a Queue from a QueueCreateInfo root descriptor. Capacity
// must be >= 1.
func New(info *texec.QueueCreateInfo) (*Queue, error) {
	if info == nil || info.Type != texec.StructureTypeQueueCreateInfo || info.Capacity < 1 {
		return nil, texec.ErrInvalidArgument
	}

	q := &Queue{
		buf: make([]interface{}, info.Capacity),
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// NewWithCapacity is a convenience constructor equivalent to New with a
// bare QueueCreateInfo{Capacity: capacity}.
func NewWithCapacity(capacity int) (*Queue, error) {
	return New(texec.NewQueueCreateInfo(capacity))
}

func (q *Queue) capacity() int {
	return len(q.buf)
}

func (q *Queue) isFull() bool {
	return q.count == q.capacity()
}

func (q *Queue) isEmpty() bool {
	return q.count == 0
}

// pushLocked appends item at the tail. Caller holds q.mu.
func (q *Queue) pushLocked(item interface{}) {
	tail := (q.head + q.count) % q.capacity()
	q.buf[tail] = item
	q.count++
}

// popLocked removes and returns the head item. Caller holds q.mu.
func (q *Queue) popLocked() interface{} {
	item := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % q.capacity()
	q.count--
	return item
}

// Close stops the queue from accepting new items and wakes every blocked
// Push/Pop so they can observe the closure. Already-queued items remain
// poppable (drain semantics): Pop keeps succeeding until the queue is
// empty, after which it returns ErrClosed. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.notEmpty.Broadcast()
		q.notFull.Broadcast()
	}
	q.mu.Unlock()
}

// Destroy releases the queue's resources. It fails with ErrBusy unless the
// queue has been closed, preventing destruction out from under a thread
// still waiting on it.
func (q *Queue) Destroy() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		return texec.ErrBusy
	}
	q.buf = nil
	return nil
}

// TryPush attempts to enqueue item without blocking. It fails with
// ErrRejected if the queue is full, or ErrClosed if the queue is closed.
func (q *Queue) TryPush(item interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return texec.ErrClosed
	}
	if q.isFull() {
		return texec.ErrRejected
	}
	q.pushLocked(item)
	q.notEmpty.Signal()
	return nil
}

// Push enqueues item, blocking while the queue is full. It returns
// ErrClosed if the queue is or becomes closed before space is available;
// per the spec's resolution of that ambiguity, a concurrent Close always
// wins over an in-progress blocking Push.
func (q *Queue) Push(item interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.isFull() {
		q.notFull.Wait()
	}
	if q.closed {
		return texec.ErrClosed
	}
	q.pushLocked(item)
	q.notEmpty.Signal()
	return nil
}

// TryPop attempts to dequeue the head item without blocking. It fails with
// ErrRejected if the queue is empty and not closed, or ErrClosed if the
// queue is empty and closed.
func (q *Queue) TryPop() (interface{}, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isEmpty() {
		if q.closed {
			return nil, texec.ErrClosed
		}
		return nil, texec.ErrRejected
	}
	item := q.popLocked()
	q.notFull.Signal()
	return item, nil
}

// Pop dequeues the head item, blocking while the queue is empty and not
// closed. Drain semantics: if the queue is closed but non-empty, Pop still
// returns the next item; only once closed and empty does it return
// ErrClosed.
func (q *Queue) Pop() (interface{}, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.isEmpty() {
		q.notEmpty.Wait()
	}
	if q.isEmpty() {
		// closed && empty, by the loop's exit condition.
		return nil, texec.ErrClosed
	}
	item := q.popLocked()
	q.notFull.Signal()
	return item, nil
}

// Len returns the current number of queued items. Intended for
// diagnostics/metrics; the value may be stale the instant it is read.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the queue's fixed capacity.
func (q *Queue) Cap() int {
	return q.capacity()
}
