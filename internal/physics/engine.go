package physics

import (
	"math"

	"github.com/san-kum/springsim/internal/integrators"
)

// Derivative returns d/dt of s. The result's fields hold
// (x', theta', x'', theta''). It assumes L0+x > 0, which ApplyCollision keeps.
func Derivative(s PhaseState, p Params) PhaseState {
	l := p.L0 + s.X
	sin, cos := math.Sincos(s.Theta)

	xpp := l*s.ThetaPrime*s.ThetaPrime - p.K*s.X + p.G*cos - p.Ldc*s.XPrime
	tpp := -(p.G*sin+2*s.XPrime*s.ThetaPrime)/l - p.Ldc*s.ThetaPrime

	return PhaseState{
		X:          s.XPrime,
		Theta:      s.ThetaPrime,
		XPrime:     xpp,
		ThetaPrime: tpp,
	}
}

// Integrate advances s by one fixed RK4 step of dt seconds.
func Integrate(s PhaseState, dt float64, p Params) PhaseState {
	sys := &SpringPendulum{Params: p}
	next := integrators.NewRK4().Step(sys, s.Vector(), 0, dt)
	return PhaseState{X: next[0], Theta: next[1], XPrime: next[2], ThetaPrime: next[3]}
}

// ApplyCollision keeps the bob from passing through the pivot. When the
// spring is shorter than rBob+rPivot it is pinned at that length and the
// radial velocity is reflected. Theta and theta' are left alone.
func ApplyCollision(s PhaseState, p Params) PhaseState {
	if Collides(s, p) {
		s.X = floorStretch(p)
		s.XPrime = -s.XPrime
	}
	return s
}

// floorStretch is the smallest x with x+L0 >= rBob+rPivot in floating
// point. MinLength()-L0 alone can land one ulp short.
func floorStretch(p Params) float64 {
	floor := p.MinLength()
	x := floor - p.L0
	for x+p.L0 < floor {
		x = math.Nextafter(x, math.Inf(1))
	}
	return x
}

// Collides reports whether ApplyCollision would change s.
func Collides(s PhaseState, p Params) bool {
	return s.X+p.L0 < p.MinLength()
}

// Energy is the mechanical energy per unit mass, taking the pivot as the
// zero of gravitational potential.
func Energy(s PhaseState, p Params) float64 {
	l := p.L0 + s.X
	ke := 0.5 * (s.XPrime*s.XPrime + l*l*s.ThetaPrime*s.ThetaPrime)
	pe := 0.5*p.K*s.X*s.X - p.G*l*math.Cos(s.Theta)
	return ke + pe
}

// NaturalFrequencies returns the small-oscillation frequencies in Hz of the
// swinging and the bouncing modes about the hanging equilibrium.
func NaturalFrequencies(p Params) (pendulumHz, springHz float64) {
	leq := p.L0 + p.G/p.K
	pendulumHz = math.Sqrt(p.G/leq) / (2 * math.Pi)
	springHz = math.Sqrt(p.K) / (2 * math.Pi)
	return pendulumHz, springHz
}
