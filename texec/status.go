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

import (
	"errors"
	"fmt"
)

// Status is the taxonomy every texec operation's failure falls into. It is
// carried by StatusError rather than returned as a raw value, so callers
// use the normal Go error idioms (errors.Is, error wrapping) while still
// being able to recover the status with AsStatus.
type Status int

const (
	// StatusOK is never stored in an error; it exists only for documentation
	// and for AsStatus's zero-value-on-no-error behavior.
	StatusOK Status = iota
	// StatusNotReady indicates a value was polled before it was available.
	StatusNotReady
	// StatusRejected indicates a non-blocking operation failed because the
	// target was full (push) or empty (pop), not because it is closed.
	StatusRejected
	// StatusBusy indicates the lifecycle forbids the operation now but may
	// allow it later (e.g. destroy before join).
	StatusBusy
	// StatusClosed indicates the lifecycle permanently forbids the operation.
	StatusClosed
	// StatusUnsupported indicates the operation or capability is not
	// implemented by this Executor.
	StatusUnsupported
	// StatusInvalidArgument indicates malformed input: a nil required
	// pointer, a zero capacity, an unrecognized descriptor type, a chain
	// missing a required root.
	StatusInvalidArgument
	// StatusInvalidState indicates the callee cannot service the request in
	// its current state, outside of the Busy/Closed lifecycle cases above.
	StatusInvalidState
	// StatusOutOfMemory indicates an allocation failure.
	StatusOutOfMemory
	// StatusInternalError indicates an impossible internal condition, such
	// as a worker goroutine failing to start.
	StatusInternalError
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNotReady:
		return "NOT_READY"
	case StatusRejected:
		return "REJECTED"
	case StatusBusy:
		return "BUSY"
	case StatusClosed:
		return "CLOSED"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusInvalidState:
		return "INVALID_STATE"
	case StatusOutOfMemory:
		return "OUT_OF_MEMORY"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusError is an error that carries one of the Status codes above. All
// sentinel errors exported by texec, texec/queue, texec/handle, texec/pool
// and texec/group are *StatusError values, so they can be compared both
// with errors.Is (exact sentinel match) and inspected with AsStatus (status
// class match, regardless of which operation produced it).
type StatusError struct {
	Status  Status
	Message string
}

// NewStatusError creates a StatusError with the given status and message.
func NewStatusError(status Status, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("texec: %s: %s", e.Status, e.Message)
}

// AsStatus extracts the Status carried by err, walking the error chain with
// errors.As. It returns (StatusOK, false) if err is nil, and
// (StatusInternalError, true) if err is non-nil but not a *StatusError.
func AsStatus(err error) (Status, bool) {
	if err == nil {
		return StatusOK, false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return StatusInternalError, true
}
