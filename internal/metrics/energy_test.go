package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(sim.Frame{Energy: -20})
	m.Observe(sim.Frame{Energy: -22})

	if math.Abs(m.Value()+21) > 1e-12 {
		t.Errorf("expected mean -21, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftUndamped(t *testing.T) {
	p := physics.DefaultParams()
	p.Ldc = 0
	m := NewEnergyDrift()

	s := physics.InitialState(p, 0.4)
	for i := 0; i < 2000; i++ {
		m.Observe(sim.Frame{State: s, Energy: physics.Energy(s, p)})
		s = physics.ApplyCollision(physics.Integrate(s, 0.005, p), p)
	}

	if m.Value() > 1e-8 {
		t.Errorf("drift too large for undamped motion: %.3e", m.Value())
	}
}

func TestEnergyDriftRebaselines(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(sim.Frame{Energy: -10})
	m.Observe(sim.Frame{Energy: -10})
	m.Observe(sim.Frame{Energy: 50, Mode: sim.DraggingBob})
	m.Observe(sim.Frame{Energy: -4, Epoch: 1})
	m.Observe(sim.Frame{Energy: -4, Epoch: 1})

	if m.Value() != 0 {
		t.Errorf("held frames and throws should not count as drift, got %f", m.Value())
	}

	m.Observe(sim.Frame{Energy: -5, Epoch: 1})
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected drift 0.25, got %f", m.Value())
	}
}

func TestMotionCounters(t *testing.T) {
	set := NewSet(NewPeakAngle(), NewReleases(), NewCollisions())
	frames := []sim.Frame{
		{State: physics.PhaseState{Theta: 0.2}, Releases: 2},
		{State: physics.PhaseState{Theta: -0.7}, Releases: 2, Collided: true},
		{State: physics.PhaseState{Theta: 0.5}, Releases: 3},
		{State: physics.PhaseState{Theta: 0.1}, Releases: 4, Collided: true},
	}
	for _, f := range frames {
		set.Observe(f)
	}

	got := set.Values()
	want := map[string]float64{"peak_theta": 0.7, "releases": 2, "collisions": 2}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s: got %g, want %g", name, got[name], v)
		}
	}

	set.Reset()
	for name, v := range set.Values() {
		if v != 0 {
			t.Errorf("%s: expected 0 after reset, got %g", name, v)
		}
	}
}

func TestStandardNames(t *testing.T) {
	vals := Standard().Values()
	for _, name := range []string{"energy", "energy_drift", "peak_theta", "releases", "collisions"} {
		if _, ok := vals[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}
