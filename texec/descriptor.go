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

// StructureType tags the concrete Go type behind a Descriptor so that a
// chain walk can select the first descriptor of a sought type without a
// type switch over every known extension. It plays the role the C ABI's
// texec_structure_type_t enum plays in the original implementation.
type StructureType int32

// Root structure types. Every Create/Submit call is rooted at exactly one
// of these.
const (
	StructureTypeExecutorCreateInfo StructureType = 0x1000 + iota
	StructureTypeExecutorSubmitInfo
	StructureTypeTaskGroupCreateInfo
	StructureTypeQueueCreateInfo
)

// Extension structure types, recognized when found while walking the next
// chain of the corresponding root. Unknown types encountered during a walk
// are skipped, never an error: that is the entire point of the chain.
const (
	StructureTypeThreadPoolInfo StructureType = 0x1100 + iota
	StructureTypeDiagnosticsInfo
)

const (
	StructureTypePriorityInfo StructureType = 0x2100 + iota
	StructureTypeDeadlineInfo
	StructureTypeTraceContextInfo
	StructureTypeBackpressureInfo
)

const StructureTypeGroupAllocatorInfo StructureType = 0x3100

const StructureTypeQueueAllocatorInfo StructureType = 0x4100

// Descriptor is implemented by every root and extension structure in the
// chain. descriptorHeader returns the descriptor's own type/next pair.
type Descriptor interface {
	descriptorHeader() Header
}

// Header is the common prefix every Descriptor embeds, analogous to the C
// ABI's texec_structure_header_t. Next is nil-able and forward-only: a
// descriptor never points back at one earlier in the chain.
type Header struct {
	Type StructureType
	Next Descriptor
}

// descriptorHeader implements Descriptor for anything that embeds Header
// directly (the common case: embed Header as the first field).
func (h Header) descriptorHeader() Header {
	return h
}

// setDescriptorNext is the pointer-receiver half of descriptorNextSetter
// (see create_info.go); it is promoted to any *T where T embeds Header.
func (h *Header) setDescriptorNext(next Descriptor) {
	h.Next = next
}

// FindDescriptor walks the chain starting at first looking for a
// descriptor of the given type, returning the first match or nil. This is
// the "trivial linked-list walk" the spec calls out as an external
// collaborator; it is implemented here because every other component in
// this module depends on it.
func FindDescriptor(first Descriptor, want StructureType) Descriptor {
	for d := first; d != nil; d = d.descriptorHeader().Next {
		if d.descriptorHeader().Type == want {
			return d
		}
	}
	return nil
}
