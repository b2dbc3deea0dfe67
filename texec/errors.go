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

// Sentinel errors shared by texec, texec/queue, texec/handle, texec/pool
// and texec/group. Each wraps a Status so callers can either compare
// directly with errors.Is or recover the class with AsStatus.
var (
	// ErrInvalidArgument indicates malformed input: a nil required field, a
	// zero capacity, a descriptor chain missing its required root, or an
	// unrecognized root type.
	ErrInvalidArgument = NewStatusError(StatusInvalidArgument, "invalid argument")

	// ErrClosed indicates the target's lifecycle has permanently closed.
	ErrClosed = NewStatusError(StatusClosed, "closed")

	// ErrRejected indicates a non-blocking operation found its target full
	// or empty.
	ErrRejected = NewStatusError(StatusRejected, "rejected")

	// ErrBusy indicates the operation cannot proceed in the current
	// lifecycle state, but may succeed later.
	ErrBusy = NewStatusError(StatusBusy, "busy")

	// ErrNotReady indicates a value was polled before it became available.
	ErrNotReady = NewStatusError(StatusNotReady, "not ready")

	// ErrOutOfMemory indicates an allocation failure.
	ErrOutOfMemory = NewStatusError(StatusOutOfMemory, "out of memory")

	// ErrInternalError indicates an impossible internal condition.
	ErrInternalError = NewStatusError(StatusInternalError, "internal error")

	// ErrUnsupported indicates the requested capability or operation is not
	// implemented.
	ErrUnsupported = NewStatusError(StatusUnsupported, "unsupported")
)
