package sim_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

// px converts a position in meters to a mouse event at the default scale.
func px(kind sim.PointerKind, pos r2.Vec) sim.PointerEvent {
	return sim.PointerEvent{Kind: kind, X: pos.X * physics.DefaultPxPerM, Y: pos.Y * physics.DefaultPxPerM}
}

var _ = Describe("Session", func() {
	var (
		clock   *sim.ManualClock
		session *sim.Session
		params  physics.Params
	)

	BeforeEach(func() {
		params = physics.DefaultParams()
		clock = sim.NewManualClock()
		session = sim.NewSession(params, sim.DefaultOptions(), clock, nil)
		session.Resize(800, 600)
	})

	Describe("startup", func() {
		It("hangs the bob at the equilibrium stretch with a small angle", func() {
			s := session.State()
			Expect(s.X).To(BeNumerically("~", 9.8/3, 1e-12))
			Expect(s.Theta).To(Equal(0.1))
			Expect(session.Mode()).To(Equal(sim.Idle))
			Expect(session.Readout()).To(Equal("Not dragging"))
		})

		It("anchors the pivot once", func() {
			Expect(session.Pivot()).To(Equal(r2.Vec{X: 4, Y: 1}))
			session.Resize(1200, 900)
			Expect(session.Pivot()).To(Equal(r2.Vec{X: 4, Y: 1}))
			Expect(session.Viewport()).To(Equal(r2.Vec{X: 1200, Y: 900}))
		})
	})

	Describe("Tick", func() {
		It("caps the step after a long pause", func() {
			session.Tick(0)
			f := session.Tick(5 * time.Second)
			Expect(f.Dt).To(Equal(30 * time.Millisecond))
		})

		It("treats a clock that went backwards as no time passing", func() {
			session.Tick(100 * time.Millisecond)
			before := session.State()
			f := session.Tick(50 * time.Millisecond)
			Expect(f.Dt).To(BeZero())
			Expect(f.State).To(Equal(before))
		})

		It("matches one integrator step followed by collision", func() {
			start := session.State()
			f := session.Tick(16 * time.Millisecond)
			want := physics.ApplyCollision(physics.Integrate(start, 0.016, params), params)
			Expect(f.State).To(Equal(want))
			Expect(f.Tick).To(Equal(1))
			Expect(f.Bob).To(Equal(session.Bob()))
		})

		It("keeps the bob outside the pivot after a throw at it", func() {
			pivot := session.Pivot()
			floor := params.MinLength()
			Expect(session.PointerDown(px(sim.Mouse, session.Bob()))).To(Succeed())
			clock.Set(10 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, r2.Add(pivot, r2.Vec{Y: floor + 0.15})))).To(Succeed())
			clock.Set(20 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, r2.Add(pivot, r2.Vec{Y: floor + 0.05})))).To(Succeed())
			Expect(session.PointerUp(px(sim.Mouse, r2.Add(pivot, r2.Vec{Y: floor + 0.05})))).To(Succeed())
			Expect(session.State().XPrime).To(BeNumerically("~", -4, 1e-9))

			collided := false
			for i := 2; i <= 500; i++ {
				f := session.Tick(time.Duration(i) * 10 * time.Millisecond)
				Expect(f.State.IsValid()).To(BeTrue(), "tick %d diverged: %+v", i, f.State)
				collided = collided || f.Collided
				Expect(f.State.Length(f.Params)).To(BeNumerically(">=", f.Params.MinLength()))
			}
			Expect(collided).To(BeTrue())
		})
	})

	Describe("dragging the bob", func() {
		var grab r2.Vec

		BeforeEach(func() {
			grab = session.Bob()
			Expect(session.PointerDown(px(sim.Mouse, grab))).To(Succeed())
		})

		It("enters DraggingBob and shows the pointer position", func() {
			Expect(session.Mode()).To(Equal(sim.DraggingBob))
			Expect(session.Readout()).To(MatchRegexp(`^\d+(\.\d{1,2})?, \d+(\.\d{1,2})?$`))
		})

		It("suspends integration while held", func() {
			held := session.State()
			target := r2.Add(grab, r2.Vec{X: 0.5, Y: -0.2})
			clock.Set(10 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, target))).To(Succeed())

			for i := 1; i <= 10; i++ {
				f := session.Tick(time.Duration(i) * 16 * time.Millisecond)
				Expect(f.State).To(Equal(held))
				Expect(f.Dragging()).To(BeTrue())
				Expect(r2.Norm(r2.Sub(f.Bob, target))).To(BeNumerically("<", 1e-12))
			}
		})

		It("throws the bob with the clamped pointer velocity", func() {
			clock.Set(10 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, r2.Add(grab, r2.Vec{X: 0.1})))).To(Succeed())
			Expect(session.PointerUp(px(sim.Mouse, r2.Add(grab, r2.Vec{X: 0.1})))).To(Succeed())

			s := session.State()
			Expect(math.Hypot(s.XPrime, s.ThetaPrime)).To(BeNumerically("~", 4, 1e-9))
			Expect(s.ThetaPrime).To(BeNumerically(">", 0))
			Expect(session.Mode()).To(Equal(sim.Idle))
			Expect(session.Readout()).To(Equal("Not dragging"))
			Expect(session.Releases()).To(Equal(1))
		})

		It("drops the bob at rest after the pointer sits still", func() {
			clock.Set(10 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, r2.Add(grab, r2.Vec{X: 0.1})))).To(Succeed())
			clock.Set(70 * time.Millisecond)
			Expect(session.PointerUp(px(sim.Mouse, grab))).To(Succeed())

			s := session.State()
			Expect(s.XPrime).To(BeZero())
			Expect(s.ThetaPrime).To(BeZero())
		})

		It("expires the velocity estimate during frames", func() {
			clock.Set(10 * time.Millisecond)
			Expect(session.PointerMove(px(sim.Mouse, r2.Add(grab, r2.Vec{X: 0.1})))).To(Succeed())
			Expect(session.Drag().Vel.X).To(BeNumerically(">", 0))

			session.Tick(60 * time.Millisecond)
			Expect(session.Drag().Vel).To(Equal(r2.Vec{}))
		})

		It("ends the drag on blur", func() {
			Expect(session.Blur()).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.Idle))
			Expect(session.Focused()).To(BeFalse())
			Expect(session.Drag().Active).To(BeFalse())

			session.Focus()
			Expect(session.Focused()).To(BeTrue())
		})
	})

	Describe("hit testing", func() {
		It("drags the canvas when pressed away from the bob", func() {
			Expect(session.PointerDown(sim.PointerEvent{Kind: sim.Mouse, X: 10, Y: 20})).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.DraggingCanvas))
			Expect(session.Readout()).To(Equal("0.10, 0.20"))

			before := session.State()
			session.Tick(16 * time.Millisecond)
			Expect(session.State()).NotTo(Equal(before))

			Expect(session.PointerUp(sim.PointerEvent{Kind: sim.Mouse, X: 10, Y: 20})).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.Idle))
			Expect(session.Releases()).To(BeZero())
		})

		It("gives touch a larger radius than the mouse", func() {
			near := r2.Add(session.Bob(), r2.Vec{X: 2.5 * params.RBob})

			Expect(session.PointerDown(px(sim.Mouse, near))).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.DraggingCanvas))
			Expect(session.PointerUp(px(sim.Mouse, near))).To(Succeed())

			Expect(session.PointerDown(px(sim.Touch, near))).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.DraggingBob))
		})

		It("does not grab the bob while paused", func() {
			session.SetAnimating(false)
			Expect(session.PointerDown(px(sim.Mouse, session.Bob()))).To(Succeed())
			Expect(session.Mode()).To(Equal(sim.DraggingCanvas))
		})
	})

	Describe("clock failures", func() {
		It("fails pointer input fast", func() {
			clock.Fail(errors.New("performance.now missing"))
			err := session.PointerDown(px(sim.Mouse, session.Bob()))
			Expect(errors.Is(err, sim.ErrClockUnavailable)).To(BeTrue())
			Expect(session.Mode()).To(Equal(sim.Idle))
		})
	})

	Describe("Reset", func() {
		It("restores defaults and is idempotent", func() {
			Expect(session.SetParam("k", 5)).To(Succeed())
			session.Tick(16 * time.Millisecond)

			session.Reset()
			first := session.State()
			Expect(first).To(Equal(physics.RestState(params)))
			Expect(session.Params()).To(Equal(params))
			Expect(session.Ticks()).To(BeZero())

			session.Reset()
			Expect(session.State()).To(Equal(first))
			Expect(session.Params()).To(Equal(params))
		})
	})

	Describe("SetParam", func() {
		It("rejects unknown names", func() {
			err := session.SetParam("mass", 2)
			Expect(errors.Is(err, dynamo.ErrUnknownParam)).To(BeTrue())
		})

		It("takes effect on the next tick without validation", func() {
			Expect(session.SetParam("g", -9.8)).To(Succeed())
			f := session.Tick(16 * time.Millisecond)
			Expect(f.Params.G).To(Equal(-9.8))
		})
	})
})
