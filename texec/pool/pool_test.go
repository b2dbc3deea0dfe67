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

package pool_test

import (
	"sync/atomic"
	"time"

	"github.com/texec/texec"
	"github.com/texec/texec/pool"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func countingTask(counter *int32) texec.Task {
	return texec.Task{
		Run: func(ctx interface{}) int {
			atomic.AddInt32(counter, 1)
			return 0
		},
	}
}

var _ = Describe("Pool", func() {
	It("rejects a nil or mistyped create info", func() {
		_, err := pool.Create(nil)
		Expect(err).Should(Equal(texec.ErrInvalidArgument))

		_, err = pool.Create(&texec.ExecutorCreateInfo{})
		Expect(err).Should(Equal(texec.ErrInvalidArgument))
	})

	It("runs a single submitted task and publishes its result", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 4, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		h, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 5 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		h.Wait()
		result, err := h.Result()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(5))

		p.Close()
		p.Join()
		Expect(p.Destroy()).Should(Succeed())
	})

	It("invokes Cleanup exactly once after Run for a task that executes", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 4, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		var ranCount, cleanupCount int32
		h, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int {
				atomic.AddInt32(&ranCount, 1)
				return 0
			},
			Cleanup: func(ctx interface{}) {
				atomic.AddInt32(&cleanupCount, 1)
			},
		}))
		Expect(err).ShouldNot(HaveOccurred())

		h.Wait()
		Expect(atomic.LoadInt32(&ranCount)).Should(Equal(int32(1)))
		Expect(atomic.LoadInt32(&cleanupCount)).Should(Equal(int32(1)))

		p.Close()
		p.Join()
	})

	It("never invokes Cleanup for a task rejected under REJECT backpressure", func() {
		block := make(chan struct{})
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		// Occupy the sole worker: wait until it has taken the blocker off
		// the queue.
		blocker, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { <-block; return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(p.QueueLen, time.Second).Should(BeZero())

		// Fill the single-slot queue.
		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		// The queue is now full; this submission must be rejected, and its
		// Cleanup must never run.
		var cleanupCount int32
		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
			Cleanup: func(ctx interface{}) {
				atomic.AddInt32(&cleanupCount, 1)
			},
		}))
		Expect(err).Should(Equal(texec.ErrRejected))

		close(block)
		blocker.Wait()
		p.Close()
		p.Join()

		Expect(atomic.LoadInt32(&cleanupCount)).Should(Equal(int32(0)))
	})

	It("runs every task through a fixed worker count", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(4, 64, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		var counter int32
		const tasks = 50
		handles := make([]texec.TaskHandle, tasks)
		for i := 0; i < tasks; i++ {
			h, err := p.Submit(texec.NewExecutorSubmitInfo(countingTask(&counter)))
			Expect(err).ShouldNot(HaveOccurred())
			handles[i] = h
		}
		for _, h := range handles {
			h.Wait()
			h.Release()
		}
		Expect(atomic.LoadInt32(&counter)).Should(Equal(int32(tasks)))

		p.Close()
		p.Join()
	})

	It("rejects submissions once closed", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())
		p.Close()

		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).Should(Equal(texec.ErrClosed))
		p.Join()
	})

	It("rejects a full queue under REJECT backpressure", func() {
		block := make(chan struct{})
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		// Occupy the sole worker: wait until it has taken the blocker off
		// the queue.
		blocker, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { <-block; return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(p.QueueLen, time.Second).Should(BeZero())

		// Fill the single-slot queue.
		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		// The queue is now full; a third submission must be rejected.
		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).Should(Equal(texec.ErrRejected))

		close(block)
		blocker.Wait()

		p.Close()
		p.Join()
	})

	It("runs a task inline on the caller under CALLER_RUNS when full", func() {
		block := make(chan struct{})
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		blocker, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { <-block; return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(p.QueueLen, time.Second).Should(BeZero())

		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		var ranInline int32
		callerGoroutine := make(chan struct{})
		h, err := p.Submit(texec.NewExecutorSubmitInfo(
			texec.Task{
				Run: func(ctx interface{}) int {
					atomic.StoreInt32(&ranInline, 1)
					return 0
				},
			},
			texec.NewBackpressureInfo(texec.BackpressureCallerRuns),
		))
		Expect(err).ShouldNot(HaveOccurred())
		close(callerGoroutine)

		// CALLER_RUNS executes synchronously inside Submit, so the handle is
		// already done by the time Submit returns.
		Expect(h.IsDone()).Should(BeTrue())
		Expect(atomic.LoadInt32(&ranInline)).Should(Equal(int32(1)))

		close(block)
		blocker.Wait()
		p.Close()
		p.Join()
	})

	It("blocks Submit under BLOCK backpressure until space frees up", func() {
		block := make(chan struct{})
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureBlock),
		))
		Expect(err).ShouldNot(HaveOccurred())

		blocker, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { <-block; return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int { return 0 },
		}))
		Expect(err).ShouldNot(HaveOccurred())

		submitted := make(chan error, 1)
		go func() {
			_, err := p.Submit(texec.NewExecutorSubmitInfo(texec.Task{
				Run: func(ctx interface{}) int { return 0 },
			}))
			submitted <- err
		}()

		Consistently(submitted, 30*time.Millisecond).ShouldNot(Receive())
		close(block)
		blocker.Wait()

		Eventually(submitted, time.Second).Should(Receive(BeNil()))

		p.Close()
		p.Join()
	})

	It("reports capabilities", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(3, 4, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		v, err := p.Query(texec.CapabilityWorkerCount)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).Should(Equal(3))

		v, err = p.Query(texec.CapabilitySupportsPriority)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).Should(Equal(false))

		v, err = p.Query(texec.CapabilitySupportsTracing)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).Should(Equal(true))

		_, err = p.Query(texec.Capability(999))
		Expect(err).Should(Equal(texec.ErrUnsupported))

		p.Close()
		p.Join()
	})

	It("refuses Destroy until Join has completed", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		Expect(p.Destroy()).Should(Equal(texec.ErrBusy))
		p.Close()
		p.Join()
		Expect(p.Destroy()).Should(Succeed())
	})

	It("aggregates SubmitMany into a group that waits for every task", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(4, 64, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())

		var counter int32
		const n = 20
		roots := make([]texec.Descriptor, n)
		for i := 0; i < n; i++ {
			roots[i] = texec.NewExecutorSubmitInfo(countingTask(&counter))
		}

		g, err := p.SubmitMany(roots)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(g.Wait()).Should(Succeed())
		Expect(atomic.LoadInt32(&counter)).Should(Equal(int32(n)))

		p.Close()
		p.Join()
	})

	It("destroys the partially built group on the first SubmitMany failure", func() {
		p, err := pool.Create(texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject),
		))
		Expect(err).ShouldNot(HaveOccurred())
		p.Close()

		roots := []texec.Descriptor{
			texec.NewExecutorSubmitInfo(texec.Task{Run: func(ctx interface{}) int { return 0 }}),
		}
		_, err = p.SubmitMany(roots)
		Expect(err).Should(Equal(texec.ErrClosed))

		p.Join()
	})
})
