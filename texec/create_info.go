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

import "time"

// ExecutorCreateInfo is the required root descriptor for creating an
// Executor. It carries nothing on its own beyond the header; the concrete
// configuration comes from extension descriptors chained off Next, most
// commonly a ThreadPoolInfo.
type ExecutorCreateInfo struct {
	Header
}

// NewExecutorCreateInfo builds the root descriptor, chaining extensions in
// the order given. Each extension's own Next is overwritten to point at
// the following one, so callers may pass extensions built independently.
func NewExecutorCreateInfo(extensions ...Descriptor) *ExecutorCreateInfo {
	info := &ExecutorCreateInfo{Header{Type: StructureTypeExecutorCreateInfo}}
	info.Next = chain(extensions)
	return info
}

// ThreadPoolInfo configures a thread-pool Executor: fixed worker count,
// queue capacity, and default backpressure policy. Zero ThreadCount and
// zero QueueCapacity fall back to the documented defaults (1 and 1024).
type ThreadPoolInfo struct {
	Header
	ThreadCount   int
	QueueCapacity int
	Backpressure  BackpressurePolicy
}

// NewThreadPoolInfo creates a ThreadPoolInfo extension descriptor.
func NewThreadPoolInfo(threadCount, queueCapacity int, backpressure BackpressurePolicy) *ThreadPoolInfo {
	return &ThreadPoolInfo{
		Header:        Header{Type: StructureTypeThreadPoolInfo},
		ThreadCount:   threadCount,
		QueueCapacity: queueCapacity,
		Backpressure:  backpressure,
	}
}

// DiagnosticsInfo attaches a diagnostics hook surface to the created
// Executor. The Diag field's concrete type is texec/diagnostics.Diagnostics;
// it is declared here as interface{} to avoid an import cycle between this
// package and texec/diagnostics (which itself depends on texec.Task).
type DiagnosticsInfo struct {
	Header
	Diag interface{}
}

// NewDiagnosticsInfo creates a DiagnosticsInfo extension descriptor.
func NewDiagnosticsInfo(diag interface{}) *DiagnosticsInfo {
	return &DiagnosticsInfo{Header: Header{Type: StructureTypeDiagnosticsInfo}, Diag: diag}
}

// QueueCreateInfo is the required root descriptor for texec/queue.New.
type QueueCreateInfo struct {
	Header
	Capacity int
}

// NewQueueCreateInfo builds the root descriptor for creating a bounded
// queue of the given capacity (must be >= 1).
func NewQueueCreateInfo(capacity int, extensions ...Descriptor) *QueueCreateInfo {
	info := &QueueCreateInfo{Header: Header{Type: StructureTypeQueueCreateInfo}, Capacity: capacity}
	info.Next = chain(extensions)
	return info
}

// TaskGroupCreateInfo is the required root descriptor for texec/group.New.
type TaskGroupCreateInfo struct {
	Header
	// CapacityHint seeds the group's backing storage; 0 means the documented
	// default of 8.
	CapacityHint int
}

// NewTaskGroupCreateInfo builds the root descriptor for creating a
// TaskGroup.
func NewTaskGroupCreateInfo(capacityHint int) *TaskGroupCreateInfo {
	return &TaskGroupCreateInfo{Header: Header{Type: StructureTypeTaskGroupCreateInfo}, CapacityHint: capacityHint}
}

// DeadlineInfo is accepted on submit but ignored by the thread-pool
// Executor (Query reports SupportsDeadline == false).
type DeadlineInfo struct {
	Header
	Deadline time.Duration
}

// NewDeadlineInfo creates a DeadlineInfo extension descriptor.
func NewDeadlineInfo(deadline time.Duration) *DeadlineInfo {
	return &DeadlineInfo{Header: Header{Type: StructureTypeDeadlineInfo}, Deadline: deadline}
}

// PriorityInfo is accepted on submit but ignored by the thread-pool
// Executor (Query reports SupportsPriority == false).
type PriorityInfo struct {
	Header
	Priority Priority
}

// NewPriorityInfo creates a PriorityInfo extension descriptor.
func NewPriorityInfo(priority Priority) *PriorityInfo {
	return &PriorityInfo{Header: Header{Type: StructureTypePriorityInfo}, Priority: priority}
}

// TraceContextInfo forwards an opaque trace context to diagnostics hooks.
type TraceContextInfo struct {
	Header
	TraceContext interface{}
}

// NewTraceContextInfo creates a TraceContextInfo extension descriptor.
func NewTraceContextInfo(traceContext interface{}) *TraceContextInfo {
	return &TraceContextInfo{Header: Header{Type: StructureTypeTraceContextInfo}, TraceContext: traceContext}
}

// BackpressureInfo overrides the executor's default backpressure policy
// for a single submission.
type BackpressureInfo struct {
	Header
	Policy BackpressurePolicy
}

// NewBackpressureInfo creates a BackpressureInfo extension descriptor.
func NewBackpressureInfo(policy BackpressurePolicy) *BackpressureInfo {
	return &BackpressureInfo{Header: Header{Type: StructureTypeBackpressureInfo}, Policy: policy}
}

// chain links descriptors in order, returning the head (or nil if
// extensions is empty). It is the inverse of FindDescriptor's walk.
func chain(extensions []Descriptor) Descriptor {
	if len(extensions) == 0 {
		return nil
	}
	for i := 0; i < len(extensions)-1; i++ {
		setNext(extensions[i], extensions[i+1])
	}
	return extensions[0]
}

// descriptorNextSetter is implemented by every concrete descriptor type in
// this package via its embedded *Header accessor. Descriptors are plain
// structs embedding Header by value, so chain mutates Next through an
// interface type assertion rather than reflection.
type descriptorNextSetter interface {
	setDescriptorNext(next Descriptor)
}

func setNext(d Descriptor, next Descriptor) {
	if s, ok := d.(descriptorNextSetter); ok {
		s.setDescriptorNext(next)
	}
}
