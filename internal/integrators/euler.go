package integrators

import "github.com/san-kum/springsim/internal/dynamo"

// Euler is the explicit first-order method. It only exists so that
// `springsim compare` has a baseline to measure RK4 against.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	return x.Add(dyn.Derive(x, t).Scale(dt))
}
