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

// Package handle implements the refcounted task-completion cell described
// in spec section 4.B. It combines two ideas from the pack: the
// mutex+sync.Cond completion wait from the teacher's workerPoolTask
// (botobag/artemis/concurrent/worker_pool_executor.go), and the atomic
// CAS-loop refcounting from the C original
// (_examples/original_source/src/task_handle.c).
package handle

import (
	"sync"
	"sync/atomic"

	"github.com/texec/texec"
)

// Handle is a shared, reference-counted completion cell. The zero value is
// not usable; construct with New.
//
// Invariants: done is monotonic (false -> true, never reverts); result is
// meaningful only once done is true; mutations of done/result happen under
// mu and broadcast cond.
type Handle struct {
	refcount uint32 // accessed only via sync/atomic

	mu   sync.Mutex
	cond *sync.Cond

	done   bool
	result int
}

// New creates a Handle with an initial reference count of 1.
func New() *Handle {
	h := &Handle{refcount: 1}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Retain increments the reference count. It fails with ErrInvalidArgument
// if the handle's count has already reached zero (a use-after-free bug in
// the caller) rather than resurrecting it.
//
// The CAS loop mirrors texec_task_handle_retain in the C original: relaxed
// memory order suffices because the only required synchronization is with
// Release's final decrement, which Release provides separately via
// release/acquire ordering.
func (h *Handle) Retain() error {
	for {
		count := atomic.LoadUint32(&h.refcount)
		if count == 0 {
			return texec.ErrInvalidArgument
		}
		if atomic.CompareAndSwapUint32(&h.refcount, count, count+1) {
			return nil
		}
	}
}

// Release decrements the reference count. When the count reaches zero,
// the handle is considered destroyed: its fields must not be accessed by
// the releasing goroutine (or any other) again. Go's garbage collector
// reclaims the backing memory once the last reference is dropped; Release
// exists to make that point observable and to preserve the handle's
// refcount invariant (total retains == total releases implies destroyed
// exactly once) as a testable property rather than a memory-safety one.
func (h *Handle) Release() {
	atomic.AddUint32(&h.refcount, ^uint32(0)) // fetch-sub 1
}

// RefCount returns the current reference count. Exposed for tests of the
// retain/release invariant; not part of the functional API a task author
// needs.
func (h *Handle) RefCount() uint32 {
	return atomic.LoadUint32(&h.refcount)
}

// Complete publishes result and wakes every waiter. It is idempotent: only
// the first call takes effect, matching the spec's "first wins" rule for
// completion.
func (h *Handle) Complete(result int) {
	h.mu.Lock()
	if !h.done {
		h.result = result
		h.done = true
		h.cond.Broadcast()
	}
	h.mu.Unlock()
}

// Wait blocks until the task has completed.
func (h *Handle) Wait() {
	h.mu.Lock()
	for !h.done {
		h.cond.Wait()
	}
	h.mu.Unlock()
}

// IsDone reports whether the task has completed.
func (h *Handle) IsDone() bool {
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()
	return done
}

// Result returns the published result, or ErrNotReady if the task has not
// completed yet. Unlike Wait, Result never blocks.
func (h *Handle) Result() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.done {
		return 0, texec.ErrNotReady
	}
	return h.result, nil
}

// AwaitResult is a convenience helper equivalent to Wait followed by
// Result; since Wait guarantees completion, the returned error is always
// nil.
func (h *Handle) AwaitResult() int {
	h.Wait()
	result, _ := h.Result()
	return result
}

var _ texec.TaskHandle = (*Handle)(nil)
