package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/sim"
)

// PeakAngle is the largest |theta| reached, in radians.
type PeakAngle struct {
	name string
	peak float64
}

func NewPeakAngle() *PeakAngle {
	return &PeakAngle{name: "peak_theta"}
}

func (p *PeakAngle) Name() string { return p.name }

func (p *PeakAngle) Observe(f sim.Frame) {
	p.peak = math.Max(p.peak, math.Abs(f.State.Theta))
}

func (p *PeakAngle) Value() float64 { return p.peak }
func (p *PeakAngle) Reset()         { p.peak = 0 }

// Releases counts throws made during the observed frames.
type Releases struct {
	name  string
	first int
	last  int
	seen  bool
}

func NewReleases() *Releases {
	return &Releases{name: "releases"}
}

func (r *Releases) Name() string { return r.name }

func (r *Releases) Observe(f sim.Frame) {
	if !r.seen {
		r.first = f.Releases
		r.seen = true
	}
	r.last = f.Releases
}

func (r *Releases) Value() float64 {
	return float64(r.last - r.first)
}

func (r *Releases) Reset() {
	*r = Releases{name: r.name}
}

// Collisions counts frames in which the bob hit the pivot.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(f sim.Frame) {
	if f.Collided {
		c.count++
	}
}

func (c *Collisions) Value() float64 { return float64(c.count) }
func (c *Collisions) Reset()         { c.count = 0 }
