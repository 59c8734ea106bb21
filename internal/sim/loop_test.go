package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/sim"
)

var _ = Describe("FrameQueue", func() {
	It("runs callbacks in request order", func() {
		q := sim.NewFrameQueue()
		var order []int
		q.RequestFrame(func(time.Duration) { order = append(order, 1) })
		q.RequestFrame(func(time.Duration) { order = append(order, 2) })

		Expect(q.Flush(0)).To(Equal(2))
		Expect(order).To(Equal([]int{1, 2}))
		Expect(q.Pending()).To(BeZero())
	})

	It("drops cancelled requests", func() {
		q := sim.NewFrameQueue()
		ran := false
		id := q.RequestFrame(func(time.Duration) { ran = true })
		q.CancelFrame(id)

		Expect(q.Flush(0)).To(BeZero())
		Expect(ran).To(BeFalse())
	})

	It("defers requests made during a flush", func() {
		q := sim.NewFrameQueue()
		calls := 0
		var fn sim.FrameFunc
		fn = func(time.Duration) {
			calls++
			q.RequestFrame(fn)
		}
		q.RequestFrame(fn)

		q.Flush(0)
		Expect(calls).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
	})
})

var _ = Describe("Loop", func() {
	It("reschedules itself until stopped", func() {
		q := sim.NewFrameQueue()
		var seen []time.Duration
		loop := sim.NewLoop(q, func(now time.Duration) { seen = append(seen, now) })

		loop.Start()
		loop.Start()
		Expect(q.Pending()).To(Equal(1))

		q.Flush(16 * time.Millisecond)
		q.Flush(32 * time.Millisecond)
		Expect(seen).To(Equal([]time.Duration{16 * time.Millisecond, 32 * time.Millisecond}))

		loop.Stop()
		Expect(loop.Running()).To(BeFalse())
		Expect(q.Pending()).To(BeZero())
		Expect(q.Flush(48 * time.Millisecond)).To(BeZero())
	})

	It("can be stopped from inside its own frame", func() {
		q := sim.NewFrameQueue()
		var loop *sim.Loop
		loop = sim.NewLoop(q, func(time.Duration) { loop.Stop() })

		loop.Start()
		q.Flush(0)
		Expect(loop.Running()).To(BeFalse())
		Expect(q.Pending()).To(BeZero())
	})
})
