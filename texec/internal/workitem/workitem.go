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

// Package workitem implements the transient record pairing a task, its
// handle, and an optional trace context (spec section 4.C). It is
// internal because nothing outside texec/pool is meant to construct or
// consume one: a work item is owned by exactly one of (the worker that
// dequeues it, the submitting goroutine under caller-runs, or the
// submission error path).
package workitem

import (
	"github.com/texec/texec"
	"github.com/texec/texec/handle"
)

// Item bundles a Task, the Handle that will receive its result, and an
// optional trace context forwarded to diagnostics hooks.
type Item struct {
	Task         texec.Task
	Handle       *handle.Handle
	TraceContext interface{}
}

// New allocates an Item. There is no pool or arena: Go's allocator and GC
// play the role the C original's texec_work_item_allocate/destroy pair
// plays over a fixed-size heap slot.
func New(task texec.Task, h *handle.Handle, traceContext interface{}) *Item {
	return &Item{Task: task, Handle: h, TraceContext: traceContext}
}

// Destroy releases the item's owned handle reference. It must be called
// exactly once per Item, by whichever of the three consumers documented
// above ends up owning it.
func (i *Item) Destroy() {
	i.Handle.Release()
}
