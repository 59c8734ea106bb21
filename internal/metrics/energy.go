package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/sim"
)

// Energy is the mean mechanical energy per unit mass over all frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	e.totalEnergy += f.Energy
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change in energy seen while the
// pendulum moved on its own. Held frames are skipped and the baseline is
// taken again after every throw or reset, since those replace the state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	epoch         int
	baselined     bool
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if f.Dragging() {
		return
	}
	if !e.baselined || f.Epoch != e.epoch {
		e.initialEnergy = f.Energy
		e.epoch = f.Epoch
		e.baselined = true
		return
	}

	if e.initialEnergy != 0 {
		drift := math.Abs(f.Energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.epoch = 0
	e.baselined = false
}
