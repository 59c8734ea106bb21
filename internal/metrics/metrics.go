// Package metrics summarizes a stream of frames.
package metrics

import "github.com/san-kum/springsim/internal/sim"

type Metric interface {
	Name() string
	Observe(f sim.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to several metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Standard is the set recorded for every run.
func Standard() *Set {
	return NewSet(NewEnergy(), NewEnergyDrift(), NewPeakAngle(), NewReleases(), NewCollisions())
}

func (s *Set) Observe(f sim.Frame) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
