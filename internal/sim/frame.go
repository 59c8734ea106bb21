package sim

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/physics"
)

// Frame is everything a Surface needs to draw one tick. Positions are in
// meters; multiply by Params.PxPerM for pixels.
type Frame struct {
	Tick     int
	Now      time.Duration
	Dt       time.Duration
	Pivot    r2.Vec
	Bob      r2.Vec
	Params   physics.Params
	State    physics.PhaseState
	Energy   float64
	Readout  string
	Mode     Mode
	Collided bool
	// Epoch changes whenever the state is replaced from outside the
	// integrator, by a throw or a reset.
	Epoch int
	// Releases counts throws since the session started.
	Releases int
}

// Dragging reports whether the bob followed the pointer in this frame.
func (f Frame) Dragging() bool {
	return f.Mode == DraggingBob
}

// Surface draws frames. Clear wipes any accumulated drawing.
type Surface interface {
	Clear()
	Draw(f Frame)
}
