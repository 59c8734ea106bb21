package physics

import "github.com/san-kum/springsim/internal/dynamo"

// SpringPendulum exposes the equations of motion as a dynamo.System over the
// vector [x, theta, x', theta'].
type SpringPendulum struct {
	Params Params
}

var (
	_ dynamo.Hamiltonian  = (*SpringPendulum)(nil)
	_ dynamo.Configurable = (*Params)(nil)
)

func NewSpringPendulum() *SpringPendulum {
	return &SpringPendulum{Params: DefaultParams()}
}

func (sp *SpringPendulum) StateDim() int {
	return 4
}

func (sp *SpringPendulum) Derive(x dynamo.State, t float64) dynamo.State {
	d := Derivative(PhaseState{X: x[0], Theta: x[1], XPrime: x[2], ThetaPrime: x[3]}, sp.Params)
	return d.Vector()
}

func (sp *SpringPendulum) Energy(x dynamo.State) float64 {
	return Energy(PhaseState{X: x[0], Theta: x[1], XPrime: x[2], ThetaPrime: x[3]}, sp.Params)
}
