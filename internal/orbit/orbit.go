// Package orbit is the decorative animation: a dot tracing a Lissajous-like
// path whose color cycles slowly, leaving a trail behind it.
package orbit

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultRadius    = 200.0
	DefaultDotRadius = 3.0
	// DefaultMaxTrail bounds the remembered dots; older ones are dropped.
	DefaultMaxTrail = 20000

	saturation = 0.7
	lightness  = 0.5
)

// Dot is one drawn frame of the animation.
type Dot struct {
	Tick  int
	Pos   r2.Vec
	Hue   float64
	Color colorful.Color
}

type Orbit struct {
	Center    r2.Vec
	Radius    float64
	DotRadius float64
	MaxTrail  int
	// Seed1 and Seed2 are in [0, 1) and pick the path and color phase.
	Seed1, Seed2 float64

	tick  int
	trail []Dot
}

// New seeds a fresh orbit from rng. A nil rng uses the global source.
func New(rng *rand.Rand) *Orbit {
	var s1, s2 float64
	if rng == nil {
		s1, s2 = rand.Float64(), rand.Float64()
	} else {
		s1, s2 = rng.Float64(), rng.Float64()
	}
	return &Orbit{
		Radius:    DefaultRadius,
		DotRadius: DefaultDotRadius,
		MaxTrail:  DefaultMaxTrail,
		Seed1:     s1,
		Seed2:     s2,
	}
}

// Resize centers the path in a width x height window.
func (o *Orbit) Resize(width, height float64) {
	o.Center = r2.Vec{X: width / 2, Y: height / 2}
}

// Position is where the dot is at animation tick t.
func (o *Orbit) Position(t int) r2.Vec {
	ft := float64(t)
	return r2.Add(o.Center, r2.Scale(o.Radius, r2.Vec{
		X: math.Sin(o.Seed1 + 0.01*ft),
		Y: math.Sin(o.Seed2 + 0.02*ft*o.Seed1),
	}))
}

// Hue is the dot's hue in degrees at tick t.
func (o *Orbit) Hue(t int) float64 {
	return math.Mod(math.Floor(0.2*float64(t)*o.Seed2+360*o.Seed1), 360)
}

// Step draws the dot for the current tick and advances.
func (o *Orbit) Step() Dot {
	h := o.Hue(o.tick)
	d := Dot{
		Tick:  o.tick,
		Pos:   o.Position(o.tick),
		Hue:   h,
		Color: colorful.Hsl(h, saturation, lightness),
	}
	o.tick++
	o.trail = append(o.trail, d)
	if o.MaxTrail > 0 && len(o.trail) > o.MaxTrail {
		o.trail = append(o.trail[:0], o.trail[len(o.trail)-o.MaxTrail:]...)
	}
	return d
}

// Clear wipes the trail. The path keeps going from the current tick.
func (o *Orbit) Clear() {
	o.trail = o.trail[:0]
}

// Reset clears the trail and restarts the path.
func (o *Orbit) Reset() {
	o.Clear()
	o.tick = 0
}

func (o *Orbit) Tick() int    { return o.tick }
func (o *Orbit) Trail() []Dot { return o.trail }
