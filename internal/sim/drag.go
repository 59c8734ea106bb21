package sim

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// DragTracker follows one pointer gesture: the last position in meters,
// when it was seen, and the velocity between the last two samples.
type DragTracker struct {
	Pos    r2.Vec
	Vel    r2.Vec
	At     time.Duration
	Active bool
}

// Begin starts a gesture at rest.
func (d *DragTracker) Begin(pos r2.Vec, now time.Duration) {
	*d = DragTracker{Pos: pos, At: now, Active: true}
}

// Move records a sample. The velocity only updates when time has advanced.
func (d *DragTracker) Move(pos r2.Vec, now time.Duration) {
	if !d.Active {
		return
	}
	if dt := now - d.At; dt > 0 {
		d.Vel = r2.Scale(1/dt.Seconds(), r2.Sub(pos, d.Pos))
		d.At = now
	}
	d.Pos = pos
}

// Expire zeroes the velocity once no move has arrived for idle, so that a
// pointer held still before release drops the bob instead of throwing it.
func (d *DragTracker) Expire(now, idle time.Duration) {
	if d.Active && now-d.At >= idle {
		d.Vel = r2.Vec{}
	}
}

func (d *DragTracker) End() {
	*d = DragTracker{}
}
