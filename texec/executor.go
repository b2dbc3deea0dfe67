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

package texec

// Capability is a query key for Executor.Query.
type Capability int

const (
	// CapabilityWorkerCount reports the fixed number of worker goroutines
	// backing the Executor, as an int.
	CapabilityWorkerCount Capability = iota
	// CapabilitySupportsPriority reports whether submitted priority hints
	// influence scheduling order, as a bool.
	CapabilitySupportsPriority
	// CapabilitySupportsDeadline reports whether submitted deadlines are
	// enforced, as a bool.
	CapabilitySupportsDeadline
	// CapabilitySupportsTracing reports whether a submitted trace context is
	// forwarded to diagnostics hooks, as a bool.
	CapabilitySupportsTracing
)

// TaskHandle tracks the completion of a single submitted Task. It is
// implemented by *texec/handle.Handle; the interface is declared here so
// that Executor can expose it without the root package importing the
// handle package's concrete type into every signature.
type TaskHandle interface {
	// Wait blocks until the task has completed.
	Wait()
	// IsDone reports whether the task has completed.
	IsDone() bool
	// Result returns the task's published result. It returns
	// (0, StatusNotReady error) if the task has not completed yet.
	Result() (int, error)
	// Retain increments the handle's reference count.
	Retain() error
	// Release decrements the handle's reference count, destroying the
	// handle when it reaches zero.
	Release()
}

// TaskGroupHandle is satisfied by *texec/group.Group. It is declared here,
// alongside Executor, purely so that SubmitMany's signature does not force
// the root package to import texec/group.
type TaskGroupHandle interface {
	// Add retains handle and appends it to the group.
	Add(handle TaskHandle) error
	// Wait closes the group, waits for every added handle to complete, and
	// releases them.
	Wait() error
	// Destroy releases every handle still held by the group without
	// waiting for completion.
	Destroy()
}

// Executor manages and runs Tasks submitted as descriptor chains rooted at
// a SubmitInfo. The thread-pool implementation lives in texec/pool; the
// interface is declared here so alternative strategies (e.g. an inline,
// synchronous executor) can be added without changing this package.
type Executor interface {
	// Submit validates and schedules a single task for execution according
	// to the chain's (or the executor's default) backpressure policy. The
	// returned handle is retained on behalf of the caller; it must be
	// released when no longer needed.
	Submit(root Descriptor) (TaskHandle, error)

	// SubmitMany submits every element of roots and aggregates the
	// resulting handles into a TaskGroupHandle. On the first submission
	// failure, the partially populated group is destroyed and the error is
	// returned (best-effort, not transactional).
	SubmitMany(roots []Descriptor) (TaskGroupHandle, error)

	// Close transitions the executor from RUNNING to CLOSING: no new task
	// is accepted, but already-queued tasks still run to completion. Close
	// is idempotent.
	Close()

	// Join ensures Close has happened, then blocks until every worker
	// goroutine has exited, transitioning the executor to CLOSED. Join is
	// idempotent.
	Join()

	// Destroy releases the executor's resources. It is valid only once the
	// executor is CLOSED; otherwise it returns a StatusBusy error.
	Destroy() error

	// Query reports a capability value. See the Capability constants for
	// the concrete type returned for each key.
	Query(cap Capability) (interface{}, error)
}
