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

// Package group implements the task-group aggregator (spec section 4.E): a
// growable collection of retained TaskHandles that can be waited on as a
// unit. The growth policy and the wait-outside-the-lock pattern are
// carried over from the C original's task_group.c
// (_examples/original_source/src/task_group.c).
package group

import (
	"sync"

	"github.com/texec/texec"
)

const defaultCapacity = 8

// Group aggregates TaskHandles produced by a single SubmitMany call. The
// zero value is not usable; construct with New.
type Group struct {
	mu      sync.Mutex
	handles []texec.TaskHandle
	closed  bool
}

// New creates a Group from a TaskGroupCreateInfo root descriptor.
// CapacityHint <= 0 falls back to the default of 8, matching
// task_group_create's behavior in the C original.
func New(info *texec.TaskGroupCreateInfo) (*Group, error) {
	if info == nil || info.Type != texec.StructureTypeTaskGroupCreateInfo {
		return nil, texec.ErrInvalidArgument
	}
	capacity := info.CapacityHint
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Group{handles: make([]texec.TaskHandle, 0, capacity)}, nil
}

// Add retains handle and appends it to the group. It fails with ErrClosed
// once the group has started (or finished) waiting; a group is single-use
// once Wait begins.
func (g *Group) Add(handle texec.TaskHandle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return texec.ErrClosed
	}
	if err := handle.Retain(); err != nil {
		return err
	}
	g.ensureCapacityLocked(len(g.handles) + 1)
	g.handles = append(g.handles, handle)
	return nil
}

// ensureCapacityLocked grows the backing slice by 1.5x when needed,
// mirroring task_group_ensure_capacity's explicit growth arithmetic rather
// than relying solely on append's own amortized doubling; this keeps the
// growth factor an intentional, documented property rather than an
// implementation detail of the slice runtime.
func (g *Group) ensureCapacityLocked(need int) {
	if cap(g.handles) >= need {
		return
	}
	newCapacity := cap(g.handles) + cap(g.handles)/2
	if newCapacity < need {
		newCapacity = need
	}
	grown := make([]texec.TaskHandle, len(g.handles), newCapacity)
	copy(grown, g.handles)
	g.handles = grown
}

// Wait closes the group to further Add calls, then waits for every member
// handle to complete and releases each one. Member handles are moved out
// of the group under the lock and waited on outside it, so a concurrent
// Add sees ErrClosed promptly instead of blocking behind a long wait.
func (g *Group) Wait() error {
	g.mu.Lock()
	g.closed = true
	members := g.handles
	g.handles = nil
	g.mu.Unlock()

	for _, h := range members {
		h.Wait()
		h.Release()
	}
	return nil
}

// Destroy releases every handle still held by the group without waiting
// for completion, and marks the group closed. Use this on an error path
// where the submitted tasks are still allowed to run to completion but
// the caller no longer wants to track them.
func (g *Group) Destroy() {
	g.mu.Lock()
	members := g.handles
	g.handles = nil
	g.closed = true
	g.mu.Unlock()

	for _, h := range members {
		h.Release()
	}
}

var _ texec.TaskGroupHandle = (*Group)(nil)
