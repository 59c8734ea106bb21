package storage

import (
	"github.com/san-kum/springsim/internal/metrics"
	"github.com/san-kum/springsim/internal/sim"
)

// Recorder is a sim.Surface that keeps every frame instead of drawing it.
type Recorder struct {
	samples []Sample
	metrics *metrics.Set
	clears  int
	last    sim.Frame
}

func NewRecorder(m *metrics.Set) *Recorder {
	if m == nil {
		m = metrics.Standard()
	}
	return &Recorder{metrics: m}
}

func (r *Recorder) Draw(f sim.Frame) {
	r.samples = append(r.samples, Sample{
		Time:     f.Now.Seconds(),
		State:    f.State,
		Energy:   f.Energy,
		Dragging: f.Dragging(),
	})
	r.metrics.Observe(f)
	r.last = f
}

// Clear has nothing to wipe; it is counted so scenarios can assert on it.
func (r *Recorder) Clear() {
	r.clears++
}

func (r *Recorder) Samples() []Sample           { return r.samples }
func (r *Recorder) Metrics() map[string]float64 { return r.metrics.Values() }
func (r *Recorder) Clears() int                 { return r.clears }
func (r *Recorder) Last() sim.Frame             { return r.last }
