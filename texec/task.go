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

// Task is an immutable unit of work: a required Run function, an opaque
// Ctx the caller still owns, and an optional Cleanup invoked once, on the
// worker that executed Run, after Run has returned and after any
// diagnostics end-hook has fired.
//
// Cleanup never runs for a task that is rejected before execution (the
// caller still owns Ctx in that case and is responsible for it).
type Task struct {
	// Run performs the task's work and returns the integer result that will
	// be published on the corresponding TaskHandle. Required; a Task with a
	// nil Run is invalid input to Submit/SubmitMany.
	Run func(ctx interface{}) int

	// Ctx is opaque to texec and passed verbatim to Run and Cleanup.
	Ctx interface{}

	// Cleanup, if non-nil, is invoked with Ctx exactly once after Run
	// returns, regardless of the result value Run produced.
	Cleanup func(ctx interface{})
}

// BackpressurePolicy names the rule applied when a bounded work queue is
// full at submit time.
type BackpressurePolicy int

const (
	// BackpressureReject fails the submission immediately with
	// StatusRejected when the queue is full.
	BackpressureReject BackpressurePolicy = iota
	// BackpressureBlock waits for queue space, propagating StatusClosed if
	// the executor is closed while waiting.
	BackpressureBlock
	// BackpressureCallerRuns executes the task synchronously on the
	// submitting goroutine when the queue is full, instead of failing or
	// waiting.
	BackpressureCallerRuns
)

// String implements fmt.Stringer.
func (p BackpressurePolicy) String() string {
	switch p {
	case BackpressureReject:
		return "REJECT"
	case BackpressureBlock:
		return "BLOCK"
	case BackpressureCallerRuns:
		return "CALLER_RUNS"
	default:
		return "UNKNOWN"
	}
}

// Priority is accepted by submit as an extension descriptor but ignored by
// the thread-pool Executor (Query reports SupportsPriority == false). It
// exists for forward-compatibility with future Executor kinds.
type Priority int32
