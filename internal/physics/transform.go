package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxDragSpeed caps the throw speed, in m/s.
const DefaultMaxDragSpeed = 4.0

// Transform converts between phase space and pointer space. Pointer space
// is measured in meters with y pointing down, so theta = 0 hangs toward +y.
type Transform struct {
	Pivot        r2.Vec
	MaxDragSpeed float64
}

// PivotFor places the pivot in the horizontal middle and a sixth of the way
// down a width x height pixel viewport.
func PivotFor(width, height float64, p Params) r2.Vec {
	return r2.Vec{X: width / (2 * p.PxPerM), Y: height / (6 * p.PxPerM)}
}

func (tr Transform) ToCartesian(s PhaseState, p Params) r2.Vec {
	l := p.L0 + s.X
	sin, cos := math.Sincos(s.Theta)
	return r2.Add(tr.Pivot, r2.Scale(l, r2.Vec{X: sin, Y: cos}))
}

// ToPhaseSpace is the inverse of ToCartesian for a bob at pos moving with
// vel. The velocity is clamped to MaxDragSpeed first. A bob sitting exactly
// on the pivot maps to theta = 0 with no velocity.
//
// Both rates are projections of vel divided by the arm length once, so
// theta' comes out as a tangential speed rather than an angular rate.
func (tr Transform) ToPhaseSpace(pos, vel r2.Vec, p Params) PhaseState {
	diff := r2.Sub(pos, tr.Pivot)
	mag := r2.Norm(diff)

	s := PhaseState{
		X:     mag - p.L0,
		Theta: math.Atan2(diff.X, diff.Y),
	}
	if mag == 0 || (vel.X == 0 && vel.Y == 0) {
		return s
	}

	vel = ClampSpeed(vel, tr.MaxDragSpeed)
	s.ThetaPrime = (vel.X*diff.Y - vel.Y*diff.X) / mag
	s.XPrime = r2.Dot(diff, vel) / mag
	return s
}

// ClampSpeed scales v down to length max, keeping its direction.
func ClampSpeed(v r2.Vec, max float64) r2.Vec {
	n := r2.Norm(v)
	if n <= max || n == 0 {
		return v
	}
	return r2.Scale(max/n, v)
}
