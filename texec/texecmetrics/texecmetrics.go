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

// Package texecmetrics adapts texec/diagnostics.Diagnostics to Prometheus,
// grounded on the Collector pattern in
// _examples/ChuLiYu-raft-recovery/internal/metrics/metrics.go: one struct
// bundling a handful of counters, registered against a caller-supplied
// registry rather than the global default so a process can host more than
// one pool's metrics side by side.
package texecmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/texec/texec"
	"github.com/texec/texec/diagnostics"
)

// QueueSizer is satisfied by *texec/queue.Queue and *texec/pool.Pool
// (via Pool.QueueLen). It is declared here so this package does not need
// to import either for a gauge callback's type.
type QueueSizer interface {
	Len() int
}

// WorkerSizer is satisfied by *texec/pool.Pool's ActiveWorkers method. It
// is declared here for the same reason as QueueSizer.
type WorkerSizer interface {
	ActiveWorkers() int
}

// Collector is a diagnostics.Diagnostics implementation that records
// submit/completion/failure/rejection counts and task run duration, and,
// when given a QueueSizer and/or WorkerSizer, exposes the executor's
// current backlog and busy-worker count as gauges.
type Collector struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	rejected  prometheus.Counter
	latency   prometheus.Histogram
}

// New creates a Collector and registers its metrics against reg. If q is
// non-nil, a texec_queue_depth gauge is also registered that samples
// q.Len() on every Prometheus scrape. If w is non-nil, a
// texec_worker_busy gauge samples w.ActiveWorkers() the same way. Either
// may be nil independently, e.g. when the pool they would sample does not
// exist yet at collector construction time.
func New(reg prometheus.Registerer, q QueueSizer, w WorkerSizer) *Collector {
	c := &Collector{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texec_tasks_submitted_total",
			Help: "Total number of tasks submitted to the executor.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texec_tasks_completed_total",
			Help: "Total number of tasks whose Run returned zero.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texec_tasks_failed_total",
			Help: "Total number of tasks whose Run returned non-zero.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "texec_tasks_rejected_total",
			Help: "Total number of tasks Submit declined to run, across every backpressure policy.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "texec_task_run_duration_seconds",
			Help:    "Duration of Task.Run, from OnTaskBegin to OnTaskEnd.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.submitted, c.completed, c.failed, c.rejected, c.latency)

	if q != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "texec_queue_depth",
			Help: "Current number of work items queued but not yet started.",
		}, func() float64 {
			return float64(q.Len())
		}))
	}

	if w != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "texec_worker_busy",
			Help: "Current number of workers executing a task's Run.",
		}, func() float64 {
			return float64(w.ActiveWorkers())
		}))
	}

	return c
}

// OnSubmit implements diagnostics.Diagnostics.
func (c *Collector) OnSubmit(task texec.Task, traceContext interface{}) {
	c.submitted.Inc()
}

// OnReject implements diagnostics.Diagnostics.
func (c *Collector) OnReject(task texec.Task, traceContext interface{}, err error) {
	c.rejected.Inc()
}

// OnTaskBegin implements diagnostics.Diagnostics. The collector has
// nothing to record at task start; it exists only to satisfy the
// interface.
func (c *Collector) OnTaskBegin(task texec.Task, traceContext interface{}) {
}

// OnTaskEnd implements diagnostics.Diagnostics.
func (c *Collector) OnTaskEnd(task texec.Task, traceContext interface{}, duration time.Duration, result int) {
	c.latency.Observe(duration.Seconds())
	if result == 0 {
		c.completed.Inc()
	} else {
		c.failed.Inc()
	}
}

var _ diagnostics.Diagnostics = (*Collector)(nil)
