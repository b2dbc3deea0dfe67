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

// Package diagnostics declares the observational hook surface an Executor
// invokes at documented points (submit, task begin, task end) and ships a
// zerolog-backed implementation. Hooks are pure side effects: they receive
// no status and cannot influence scheduling. Callers must keep them
// non-blocking with respect to the same executor, since they run on the
// worker goroutine between a task's begin and end.
package diagnostics

import (
	"time"

	"github.com/texec/texec"
)

// Diagnostics is the hook surface an Executor invokes. A nil *Diagnostics
// value (or any individual nil method field on an implementation) is
// simply not called; there is no default behavior to opt out of.
type Diagnostics interface {
	// OnSubmit fires once per Submit call that passes argument validation
	// and finds the executor still running, before the backpressure policy
	// is applied: it does not by itself mean the task was enqueued or run. A
	// submission that is subsequently rejected still gets an OnSubmit
	// followed by an OnReject, never an OnTaskBegin/OnTaskEnd. A Submit that
	// fails validation, or finds the executor already closing, returns its
	// error without firing any hook.
	OnSubmit(task texec.Task, traceContext interface{})

	// OnReject fires instead of OnTaskBegin/OnTaskEnd when, after OnSubmit,
	// Submit's enqueue step declines the task (ErrRejected under REJECT, or
	// ErrClosed under any policy when the queue is found closed).
	// err is the error Submit will also return to its caller.
	OnReject(task texec.Task, traceContext interface{}, err error)

	// OnTaskBegin fires on the executing goroutine immediately before
	// task.Run is invoked.
	OnTaskBegin(task texec.Task, traceContext interface{})

	// OnTaskEnd fires on the executing goroutine immediately after
	// task.Run returns, before Cleanup and before the result is published
	// on the handle. duration covers exactly the Run call.
	OnTaskEnd(task texec.Task, traceContext interface{}, duration time.Duration, result int)
}

// Funcs adapts four plain functions into a Diagnostics value, mirroring
// the teacher's TaskFunc adapter pattern
// (botobag/artemis/concurrent/executor.go). Any field left nil is treated
// as a no-op.
type Funcs struct {
	Submit    func(task texec.Task, traceContext interface{})
	Reject    func(task texec.Task, traceContext interface{}, err error)
	TaskBegin func(task texec.Task, traceContext interface{})
	TaskEnd   func(task texec.Task, traceContext interface{}, duration time.Duration, result int)
}

var _ Diagnostics = Funcs{}

// OnSubmit implements Diagnostics.
func (f Funcs) OnSubmit(task texec.Task, traceContext interface{}) {
	if f.Submit != nil {
		f.Submit(task, traceContext)
	}
}

// OnReject implements Diagnostics.
func (f Funcs) OnReject(task texec.Task, traceContext interface{}, err error) {
	if f.Reject != nil {
		f.Reject(task, traceContext, err)
	}
}

// OnTaskBegin implements Diagnostics.
func (f Funcs) OnTaskBegin(task texec.Task, traceContext interface{}) {
	if f.TaskBegin != nil {
		f.TaskBegin(task, traceContext)
	}
}

// OnTaskEnd implements Diagnostics.
func (f Funcs) OnTaskEnd(task texec.Task, traceContext interface{}, duration time.Duration, result int) {
	if f.TaskEnd != nil {
		f.TaskEnd(task, traceContext, duration, result)
	}
}

// Multi fans a single hook call out to every non-nil Diagnostics in the
// slice, in order. Nil entries are skipped.
type Multi []Diagnostics

var _ Diagnostics = Multi(nil)

// OnSubmit implements Diagnostics.
func (m Multi) OnSubmit(task texec.Task, traceContext interface{}) {
	for _, d := range m {
		if d != nil {
			d.OnSubmit(task, traceContext)
		}
	}
}

// OnReject implements Diagnostics.
func (m Multi) OnReject(task texec.Task, traceContext interface{}, err error) {
	for _, d := range m {
		if d != nil {
			d.OnReject(task, traceContext, err)
		}
	}
}

// OnTaskBegin implements Diagnostics.
func (m Multi) OnTaskBegin(task texec.Task, traceContext interface{}) {
	for _, d := range m {
		if d != nil {
			d.OnTaskBegin(task, traceContext)
		}
	}
}

// OnTaskEnd implements Diagnostics.
func (m Multi) OnTaskEnd(task texec.Task, traceContext interface{}, duration time.Duration, result int) {
	for _, d := range m {
		if d != nil {
			d.OnTaskEnd(task, traceContext, duration, result)
		}
	}
}
