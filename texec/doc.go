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

// Package texec defines the public shape of an embeddable task-execution
// library: an opaque Task plus a capability-extensible descriptor chain
// that Executor implementations (see texec/pool) accept for create and
// submit calls.
//
// The hard concurrency work lives in the sibling packages:
//
//	texec/queue        bounded blocking queue
//	texec/handle        refcounted task completion handle
//	texec/pool          worker-pool Executor implementation
//	texec/group         aggregator over a dynamic set of handles
//
// This package only carries the shared vocabulary: Task, Status,
// BackpressurePolicy, the descriptor chain, and the Executor interface
// that every implementation (currently only the thread pool) satisfies.
package texec
