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

package texec_test

import (
	"time"

	"github.com/texec/texec"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Descriptor chain", func() {
	It("finds an extension chained off a root descriptor", func() {
		info := texec.NewExecutorCreateInfo(
			texec.NewThreadPoolInfo(4, 128, texec.BackpressureBlock),
			texec.NewDiagnosticsInfo(nil),
		)

		found := texec.FindDescriptor(info.Next, texec.StructureTypeDiagnosticsInfo)
		Expect(found).ShouldNot(BeNil())
		Expect(found.(*texec.DiagnosticsInfo)).ShouldNot(BeNil())

		found = texec.FindDescriptor(info.Next, texec.StructureTypeThreadPoolInfo)
		tp, ok := found.(*texec.ThreadPoolInfo)
		Expect(ok).Should(BeTrue())
		Expect(tp.ThreadCount).Should(Equal(4))
	})

	It("returns nil for a type absent from the chain", func() {
		info := texec.NewExecutorCreateInfo(texec.NewThreadPoolInfo(1, 1, texec.BackpressureReject))
		found := texec.FindDescriptor(info.Next, texec.StructureTypeDeadlineInfo)
		Expect(found).Should(BeNil())
	})

	It("chains submit extensions in the order given", func() {
		submit := texec.NewExecutorSubmitInfo(
			texec.Task{Run: func(ctx interface{}) int { return 0 }},
			texec.NewBackpressureInfo(texec.BackpressureCallerRuns),
			texec.NewDeadlineInfo(5*time.Second),
			texec.NewTraceContextInfo("trace-id"),
		)

		bp := texec.FindDescriptor(submit.Next, texec.StructureTypeBackpressureInfo).(*texec.BackpressureInfo)
		Expect(bp.Policy).Should(Equal(texec.BackpressureCallerRuns))

		dl := texec.FindDescriptor(submit.Next, texec.StructureTypeDeadlineInfo).(*texec.DeadlineInfo)
		Expect(dl.Deadline).Should(Equal(5 * time.Second))

		tc := texec.FindDescriptor(submit.Next, texec.StructureTypeTraceContextInfo).(*texec.TraceContextInfo)
		Expect(tc.TraceContext).Should(Equal("trace-id"))
	})
})
