package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Headless runs a Controller in virtual time: it sets the clock, lets the
// caller inject input, then flushes one frame, every Interval.
type Headless struct {
	Controller *Controller
	Queue      *FrameQueue
	Clock      *ManualClock
	Interval   time.Duration
}

// BeforeFrame is called at each virtual instant before the frame runs.
type BeforeFrame func(now time.Duration) error

// Run advances from zero through duration inclusive and returns the number
// of frames drawn. It stops early on cancellation, on a hook error, or
// when the state stops being finite.
func (h *Headless) Run(ctx context.Context, duration time.Duration, before BeforeFrame) (int, error) {
	if h.Interval <= 0 {
		return 0, fmt.Errorf("frame interval must be positive, got %v", h.Interval)
	}
	if duration < 0 {
		return 0, fmt.Errorf("duration must not be negative, got %v", duration)
	}

	frames := 0
	for now := time.Duration(0); now <= duration; now += h.Interval {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}

		h.Clock.Set(now)
		if before != nil {
			if err := before(now); err != nil {
				return frames, err
			}
		}

		if h.Queue.Flush(now) == 0 {
			continue
		}
		frames++

		f := h.Controller.LastFrame()
		if !f.State.IsValid() {
			return frames, &dynamo.StepError{
				Step:    f.Tick,
				Time:    now.Seconds(),
				State:   f.State.Vector(),
				Wrapped: dynamo.ErrUnstable,
			}
		}
	}
	return frames, nil
}
