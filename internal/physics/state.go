package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// PhaseState is the pendulum's position in phase space.
// Theta is never wrapped into [-pi, pi).
type PhaseState struct {
	X          float64 `json:"x"`
	Theta      float64 `json:"theta"`
	XPrime     float64 `json:"x_prime"`
	ThetaPrime float64 `json:"theta_prime"`
}

// InitialState hangs the bob at the spring's equilibrium stretch g/k,
// displaced by theta and at rest.
func InitialState(p Params, theta float64) PhaseState {
	return PhaseState{X: p.G / p.K, Theta: theta}
}

// RestState is the state Reset returns to.
func RestState(p Params) PhaseState {
	return InitialState(p, 0)
}

func (s PhaseState) Vector() dynamo.State {
	return dynamo.State{s.X, s.Theta, s.XPrime, s.ThetaPrime}
}

func StateFromVector(v dynamo.State) (PhaseState, error) {
	if len(v) != 4 {
		return PhaseState{}, fmt.Errorf("%w: want 4, got %d", dynamo.ErrDimensionMismatch, len(v))
	}
	return PhaseState{X: v[0], Theta: v[1], XPrime: v[2], ThetaPrime: v[3]}, nil
}

func (s PhaseState) IsValid() bool {
	for _, v := range [...]float64{s.X, s.Theta, s.XPrime, s.ThetaPrime} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Length is the current spring length L0 + x.
func (s PhaseState) Length(p Params) float64 {
	return p.L0 + s.X
}
