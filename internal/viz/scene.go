package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/sim"
)

// Scene is a sim.Surface drawing the pendulum into a braille canvas.
// Every frame replaces the previous one.
type Scene struct {
	Canvas *Canvas
	Theme  Theme
	// MaxSpeed in m/s is where the bob reaches its BobFast color.
	MaxSpeed float64

	last   sim.Frame
	frames int
}

func NewScene(width, height int, theme Theme) *Scene {
	return &Scene{Canvas: NewCanvas(width, height), Theme: theme, MaxSpeed: 8}
}

func (s *Scene) Clear() {
	s.Canvas.Clear()
}

func (s *Scene) Draw(f sim.Frame) {
	s.last = f
	s.frames++
	c := s.Canvas
	c.Clear()

	px := f.Params.PxPerM
	pivot := r2.Scale(px, f.Pivot)
	bob := r2.Scale(px, f.Bob)

	c.Pen = s.Theme.Pivot
	c.FillCircle(round(pivot.X), round(pivot.Y), round(f.Params.RPivot*px))

	c.Pen = s.Theme.Rod
	c.DrawLine(round(pivot.X), round(pivot.Y), round(bob.X), round(bob.Y))

	c.Pen = s.Theme.BobColor(BobSpeed(f), s.MaxSpeed)
	c.FillCircle(round(bob.X), round(bob.Y), round(f.Params.RBob*px))
	c.Pen = ""
}

// BobSpeed is the bob's speed in m/s. A held bob is treated as still.
func BobSpeed(f sim.Frame) float64 {
	if f.Dragging() {
		return 0
	}
	l := f.State.Length(f.Params)
	return math.Hypot(f.State.XPrime, l*f.State.ThetaPrime)
}

func (s *Scene) Last() sim.Frame { return s.last }
func (s *Scene) Frames() int     { return s.frames }

func round(v float64) int {
	return int(math.Round(v))
}
