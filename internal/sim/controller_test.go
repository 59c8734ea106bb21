package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

type fakeSurface struct {
	frames []sim.Frame
	clears int
}

func (s *fakeSurface) Clear()           { s.clears++ }
func (s *fakeSurface) Draw(f sim.Frame) { s.frames = append(s.frames, f) }

var _ = Describe("Controller", func() {
	var (
		queue   *sim.FrameQueue
		clock   *sim.ManualClock
		surface *fakeSurface
		ctrl    *sim.Controller
	)

	BeforeEach(func() {
		queue = sim.NewFrameQueue()
		clock = sim.NewManualClock()
		surface = &fakeSurface{}
		session := sim.NewSession(physics.DefaultParams(), sim.DefaultOptions(), clock, nil)
		ctrl = sim.NewController(session, queue, surface, nil)
		ctrl.Resize(800, 600)
		ctrl.Start()
	})

	It("draws one frame per flush", func() {
		queue.Flush(16 * time.Millisecond)
		queue.Flush(32 * time.Millisecond)
		Expect(surface.frames).To(HaveLen(2))
		Expect(surface.frames[1].Tick).To(Equal(2))
		Expect(ctrl.LastFrame()).To(Equal(surface.frames[1]))
	})

	It("cancels the pending frame when paused", func() {
		Expect(ctrl.ToggleAnimation()).To(BeFalse())
		Expect(ctrl.Running()).To(BeFalse())
		Expect(queue.Pending()).To(BeZero())
		Expect(queue.Flush(16 * time.Millisecond)).To(BeZero())
		Expect(surface.frames).To(BeEmpty())

		Expect(ctrl.ToggleAnimation()).To(BeTrue())
		Expect(queue.Pending()).To(Equal(1))
	})

	It("clears the surface on reset and on clear", func() {
		ctrl.Clear()
		ctrl.Reset()
		Expect(surface.clears).To(Equal(2))
		Expect(ctrl.Session().State()).To(Equal(physics.RestState(physics.DefaultParams())))
	})
})

var _ = Describe("Headless", func() {
	var h *sim.Headless

	BeforeEach(func() {
		queue := sim.NewFrameQueue()
		clock := sim.NewManualClock()
		session := sim.NewSession(physics.DefaultParams(), sim.DefaultOptions(), clock, nil)
		ctrl := sim.NewController(session, queue, &fakeSurface{}, nil)
		ctrl.Resize(800, 600)
		ctrl.Start()
		h = &sim.Headless{Controller: ctrl, Queue: queue, Clock: clock, Interval: 10 * time.Millisecond}
	})

	It("runs every interval through the end", func() {
		frames, err := h.Run(context.Background(), 90*time.Millisecond, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(Equal(10))
		Expect(h.Controller.LastFrame().Now).To(Equal(90 * time.Millisecond))
	})

	It("stops with a step error when the state diverges", func() {
		Expect(h.Controller.SetParam("L0", math.NaN())).To(Succeed())
		_, err := h.Run(context.Background(), time.Second, nil)

		var stepErr *dynamo.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrUnstable)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(1))
	})

	It("stops when the hook fails", func() {
		boom := errors.New("boom")
		frames, err := h.Run(context.Background(), time.Second, func(now time.Duration) error {
			if now == 30*time.Millisecond {
				return boom
			}
			return nil
		})
		Expect(err).To(MatchError(boom))
		Expect(frames).To(Equal(3))
	})

	It("observes cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := h.Run(ctx, time.Second, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
