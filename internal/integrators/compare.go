package integrators

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Drift is how well an integrator conserved energy over one run.
type Drift struct {
	Final    dynamo.State
	MaxDrift float64 // largest |E-E0|/|E0| seen
	Steps    int
	Elapsed  time.Duration
}

// MeasureDrift steps sys from x0 for duration seconds and tracks the
// relative energy error. sys must report its energy. A state that goes
// NaN or Inf ends the run with a *dynamo.StepError wrapping ErrUnstable;
// the returned Drift then has an infinite MaxDrift.
func MeasureDrift(sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt, duration float64) (Drift, error) {
	h, ok := sys.(dynamo.Hamiltonian)
	if !ok {
		return Drift{}, fmt.Errorf("%T does not report energy", sys)
	}
	if len(x0) != sys.StateDim() {
		return Drift{}, fmt.Errorf("%w: want %d, got %d", dynamo.ErrDimensionMismatch, sys.StateDim(), len(x0))
	}

	start := time.Now()
	e0 := h.Energy(x0)
	d := Drift{Final: x0.Clone()}
	for t := 0.0; t < duration; t += dt {
		d.Final = integ.Step(sys, d.Final, t, dt)
		d.Steps++
		if !d.Final.IsValid() {
			d.MaxDrift = math.Inf(1)
			d.Elapsed = time.Since(start)
			return d, &dynamo.StepError{Step: d.Steps, Time: t + dt, State: d.Final, Wrapped: dynamo.ErrUnstable}
		}
		if e0 != 0 {
			d.MaxDrift = math.Max(d.MaxDrift, math.Abs(h.Energy(d.Final)-e0)/math.Abs(e0))
		}
	}
	d.Elapsed = time.Since(start)
	return d, nil
}
