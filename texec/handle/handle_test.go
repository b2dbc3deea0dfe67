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

package handle_test

import (
	"sync"
	"time"

	"github.com/texec/texec"
	"github.com/texec/texec/handle"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handle", func() {
	It("starts with a reference count of 1 and is not done", func() {
		h := handle.New()
		Expect(h.RefCount()).Should(BeEquivalentTo(1))
		Expect(h.IsDone()).Should(BeFalse())

		_, err := h.Result()
		Expect(err).Should(Equal(texec.ErrNotReady))
	})

	It("retains and releases symmetrically", func() {
		h := handle.New()
		Expect(h.Retain()).Should(Succeed())
		Expect(h.RefCount()).Should(BeEquivalentTo(2))

		h.Release()
		Expect(h.RefCount()).Should(BeEquivalentTo(1))
	})

	It("refuses to retain a handle whose count has reached zero", func() {
		h := handle.New()
		h.Release()
		Expect(h.RefCount()).Should(BeEquivalentTo(0))

		err := h.Retain()
		Expect(err).Should(Equal(texec.ErrInvalidArgument))
	})

	It("publishes the result to Wait and Result exactly once", func() {
		h := handle.New()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Wait()
		}()

		time.Sleep(10 * time.Millisecond)
		h.Complete(42)
		h.Complete(99) // second call must be ignored

		wg.Wait()
		Expect(h.IsDone()).Should(BeTrue())

		result, err := h.Result()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(42))
	})

	It("AwaitResult blocks until completion and returns the result", func() {
		h := handle.New()
		go func() {
			time.Sleep(10 * time.Millisecond)
			h.Complete(7)
		}()
		Expect(h.AwaitResult()).Should(Equal(7))
	})

	It("wakes every concurrent waiter", func() {
		h := handle.New()

		const waiters = 10
		var wg sync.WaitGroup
		wg.Add(waiters)
		for i := 0; i < waiters; i++ {
			go func() {
				defer wg.Done()
				h.Wait()
			}()
		}

		time.Sleep(10 * time.Millisecond)
		h.Complete(1)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		Eventually(done, time.Second).Should(BeClosed())
	})
})
