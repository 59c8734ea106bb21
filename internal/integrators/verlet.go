package integrators

import "github.com/san-kum/springsim/internal/dynamo"

// Verlet is velocity Verlet for states laid out as [positions..., velocities...].
// Accelerations that depend on velocity (drag, Coriolis) are evaluated with
// the previous velocity, so it is only second order for conservative forces.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	v.ensureScratch(n)

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, t)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew := dyn.Derive(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return result
}
