package analysis

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two nearby trajectories
// 2. Measure their divergence over time
// 3. λ ≈ (1/t) * ln(|δx(t)/δx(0)|), renormalizing each step
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || perturbation <= 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		x = integ.Step(dyn, x, t, dt)
		xp = integ.Step(dyn, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
