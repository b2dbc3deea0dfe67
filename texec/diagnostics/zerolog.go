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

package diagnostics

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/texec/texec"
)

// ZerologLogger is a Diagnostics implementation that writes one structured
// log line per hook call via github.com/rs/zerolog, the logging library
// used throughout the pack
// (_examples/joeycumines-go-utilpkg/logiface-zerolog). Submit and
// task-begin are logged at debug level; task-end is logged at debug for a
// zero result and warn for a non-zero one, since a non-zero Run result
// most often signals a task-level failure worth surfacing by default.
// Rejections are always logged at warn, since they mean a caller's task
// never ran.
type ZerologLogger struct {
	Log zerolog.Logger
}

var _ Diagnostics = ZerologLogger{}

// OnSubmit implements Diagnostics.
func (z ZerologLogger) OnSubmit(task texec.Task, traceContext interface{}) {
	z.Log.Debug().Interface("trace", traceContext).Msg("texec: task submitted")
}

// OnReject implements Diagnostics.
func (z ZerologLogger) OnReject(task texec.Task, traceContext interface{}, err error) {
	z.Log.Warn().Interface("trace", traceContext).Err(err).Msg("texec: task rejected")
}

// OnTaskBegin implements Diagnostics.
func (z ZerologLogger) OnTaskBegin(task texec.Task, traceContext interface{}) {
	z.Log.Debug().Interface("trace", traceContext).Msg("texec: task begin")
}

// OnTaskEnd implements Diagnostics.
func (z ZerologLogger) OnTaskEnd(task texec.Task, traceContext interface{}, duration time.Duration, result int) {
	event := z.Log.Debug()
	if result != 0 {
		event = z.Log.Warn()
	}
	event.Interface("trace", traceContext).Dur("duration", duration).Int("result", result).Msg("texec: task end")
}
