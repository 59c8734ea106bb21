package sim

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/physics"
)

// Session is the live pendulum plus the gesture that may be holding it.
type Session struct {
	opts  Options
	clock Clock
	log   *zap.Logger

	params   physics.Params
	defaults physics.Params
	state    physics.PhaseState

	mode Mode
	drag DragTracker

	lastFrame time.Duration
	ticks     int
	epoch     int
	releases  int

	viewport  r2.Vec
	transform physics.Transform
	anchored  bool
	bob       r2.Vec

	animating bool
	focused   bool
	readout   string
}

func NewSession(p physics.Params, opts Options, clock Clock, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		opts:      opts,
		clock:     clock,
		log:       log,
		params:    p,
		defaults:  p,
		state:     physics.InitialState(p, opts.InitialTheta),
		transform: physics.Transform{MaxDragSpeed: opts.MaxDragSpeed},
		animating: true,
		focused:   true,
		readout:   opts.NotDraggingMessage,
	}
	s.bob = s.transform.ToCartesian(s.state, s.params)
	return s
}

// Tick advances the session to now. The step is capped at MaxFrameStep so
// a long pause (background tab, stopped loop) does not blow up the
// integrator. While the bob is held the physics does not run at all.
func (s *Session) Tick(now time.Duration) Frame {
	dt := now - s.lastFrame
	if dt < 0 {
		dt = 0
	}
	if dt > s.opts.MaxFrameStep {
		dt = s.opts.MaxFrameStep
	}
	s.lastFrame = now
	s.ticks++

	s.drag.Expire(now, s.opts.DragIdleTimeout)

	collided := false
	if s.mode == DraggingBob {
		s.bob = s.drag.Pos
	} else {
		next := physics.Integrate(s.state, dt.Seconds(), s.params)
		collided = physics.Collides(next, s.params)
		s.state = physics.ApplyCollision(next, s.params)
		s.bob = s.transform.ToCartesian(s.state, s.params)
	}

	return Frame{
		Tick:     s.ticks,
		Now:      now,
		Dt:       dt,
		Pivot:    s.transform.Pivot,
		Bob:      s.bob,
		Params:   s.params,
		State:    s.state,
		Energy:   physics.Energy(s.state, s.params),
		Readout:  s.readout,
		Mode:     s.mode,
		Collided: collided,
		Epoch:    s.epoch,
		Releases: s.releases,
	}
}

func (s *Session) PointerDown(ev PointerEvent) error {
	now, err := s.clock.Now()
	if err != nil {
		return fmt.Errorf("pointer down: %w", err)
	}
	if s.mode != Idle {
		s.release(now)
	}

	pos := s.toMeters(ev)
	s.mode = DraggingCanvas
	if s.animating && r2.Norm(r2.Sub(pos, s.bob)) <= s.opts.hitScale(ev.Kind)*s.params.RBob {
		s.mode = DraggingBob
		s.log.Debug("bob grabbed",
			zap.Stringer("pointer", ev.Kind),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y))
	}
	s.drag.Begin(pos, now)
	s.readout = formatReadout(pos)
	return nil
}

func (s *Session) PointerMove(ev PointerEvent) error {
	if s.mode == Idle {
		return nil
	}
	now, err := s.clock.Now()
	if err != nil {
		return fmt.Errorf("pointer move: %w", err)
	}

	pos := s.toMeters(ev)
	s.drag.Move(pos, now)
	s.readout = formatReadout(pos)
	return nil
}

func (s *Session) PointerUp(ev PointerEvent) error {
	if s.mode == Idle {
		return nil
	}
	now, err := s.clock.Now()
	if err != nil {
		return fmt.Errorf("pointer up: %w", err)
	}
	s.release(now)
	return nil
}

// Blur ends any gesture as if the pointer had been released; the window
// will not see the real release.
func (s *Session) Blur() error {
	s.focused = false
	if s.mode == Idle {
		return nil
	}
	now, err := s.clock.Now()
	if err != nil {
		return fmt.Errorf("blur: %w", err)
	}
	s.release(now)
	return nil
}

func (s *Session) Focus() {
	s.focused = true
}

func (s *Session) release(now time.Duration) {
	if s.mode == DraggingBob {
		s.drag.Expire(now, s.opts.DragIdleTimeout)
		s.state = s.transform.ToPhaseSpace(s.drag.Pos, s.drag.Vel, s.params)
		s.bob = s.transform.ToCartesian(s.state, s.params)
		s.epoch++
		s.releases++
		s.log.Debug("bob released",
			zap.Float64("vx", s.drag.Vel.X),
			zap.Float64("vy", s.drag.Vel.Y),
			zap.Float64("x", s.state.X),
			zap.Float64("theta", s.state.Theta))
	}
	s.mode = Idle
	s.drag.End()
	s.readout = s.opts.NotDraggingMessage
}

// Reset restores the default parameters and drops the bob at rest. An
// active gesture is left alone.
func (s *Session) Reset() {
	s.params = s.defaults
	s.state = physics.RestState(s.params)
	s.ticks = 0
	s.epoch++
	s.bob = s.transform.ToCartesian(s.state, s.params)
	s.log.Debug("session reset")
}

// SetParam edits a live parameter. The value is not checked; it takes
// effect on the next Tick.
func (s *Session) SetParam(name string, value float64) error {
	if err := s.params.SetParam(name, value); err != nil {
		return err
	}
	s.log.Debug("param changed", zap.String("name", name), zap.Float64("value", value))
	return nil
}

// Resize records the viewport in pixels. The pivot is placed the first
// time a non-empty viewport is seen and stays there.
func (s *Session) Resize(width, height float64) {
	s.viewport = r2.Vec{X: width, Y: height}
	if s.anchored || width <= 0 || height <= 0 {
		return
	}
	s.transform.Pivot = physics.PivotFor(width, height, s.params)
	s.anchored = true
	if s.mode != DraggingBob {
		s.bob = s.transform.ToCartesian(s.state, s.params)
	}
}

func (s *Session) toMeters(ev PointerEvent) r2.Vec {
	return r2.Scale(1/s.params.PxPerM, r2.Vec{X: ev.X, Y: ev.Y})
}

// formatReadout rounds to two decimals and drops trailing zeros.
func formatReadout(pos r2.Vec) string {
	return roundToHundredths(pos.X) + ", " + roundToHundredths(pos.Y)
}

func roundToHundredths(v float64) string {
	// adding zero turns -0 into 0
	return strconv.FormatFloat(math.Round(v*100)/100+0, 'f', -1, 64)
}

func (s *Session) SetAnimating(on bool)          { s.animating = on }
func (s *Session) Animating() bool               { return s.animating }
func (s *Session) Focused() bool                 { return s.focused }
func (s *Session) Mode() Mode                    { return s.mode }
func (s *Session) State() physics.PhaseState     { return s.state }
func (s *Session) Params() physics.Params        { return s.params }
func (s *Session) DefaultParams() physics.Params { return s.defaults }
func (s *Session) Pivot() r2.Vec                 { return s.transform.Pivot }
func (s *Session) Bob() r2.Vec                   { return s.bob }
func (s *Session) Viewport() r2.Vec              { return s.viewport }
func (s *Session) Readout() string               { return s.readout }
func (s *Session) Ticks() int                    { return s.ticks }
func (s *Session) Releases() int                 { return s.releases }
func (s *Session) Drag() DragTracker             { return s.drag }
