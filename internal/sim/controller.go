package sim

import (
	"time"

	"go.uber.org/zap"
)

// Controller wires a Session to a frame source and a drawing surface. It
// is the single entry point hosts call into.
type Controller struct {
	session *Session
	loop    *Loop
	surface Surface
	log     *zap.Logger
	last    Frame
}

func NewController(session *Session, sched Scheduler, surface Surface, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{session: session, surface: surface, log: log}
	c.loop = NewLoop(sched, c.frame)
	return c
}

func (c *Controller) frame(now time.Duration) {
	c.last = c.session.Tick(now)
	c.surface.Draw(c.last)
}

// Start begins animating if the session wants to.
func (c *Controller) Start() {
	if c.session.Animating() {
		c.loop.Start()
	}
}

func (c *Controller) SetAnimating(on bool) {
	c.session.SetAnimating(on)
	if on {
		c.loop.Start()
	} else {
		c.loop.Stop()
	}
	c.log.Debug("animation toggled", zap.Bool("animating", on))
}

func (c *Controller) ToggleAnimation() bool {
	c.SetAnimating(!c.session.Animating())
	return c.session.Animating()
}

func (c *Controller) Clear() {
	c.surface.Clear()
}

func (c *Controller) Reset() {
	c.session.Reset()
	c.surface.Clear()
}

func (c *Controller) PointerDown(ev PointerEvent) error { return c.session.PointerDown(ev) }
func (c *Controller) PointerMove(ev PointerEvent) error { return c.session.PointerMove(ev) }
func (c *Controller) PointerUp(ev PointerEvent) error   { return c.session.PointerUp(ev) }
func (c *Controller) Blur() error                       { return c.session.Blur() }
func (c *Controller) Focus()                            { c.session.Focus() }
func (c *Controller) Resize(width, height float64)      { c.session.Resize(width, height) }

func (c *Controller) SetParam(name string, value float64) error {
	return c.session.SetParam(name, value)
}

func (c *Controller) Session() *Session { return c.session }
func (c *Controller) Running() bool     { return c.loop.Running() }

// LastFrame is the most recent frame handed to the surface.
func (c *Controller) LastFrame() Frame { return c.last }
