package sim

import (
	"fmt"
	"time"
)

// Clock timestamps pointer samples. Readings are durations since an
// arbitrary origin and must not go backwards under normal operation.
type Clock interface {
	Now() (time.Duration, error)
}

// SystemClock is a monotonic clock starting at zero when it is created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() (time.Duration, error) {
	return time.Since(c.start), nil
}

// ManualClock only moves when told to. Scenarios and tests use it to run
// in virtual time.
type ManualClock struct {
	now time.Duration
	err error
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() (time.Duration, error) {
	if c.err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClockUnavailable, c.err)
	}
	return c.now, nil
}

func (c *ManualClock) Set(now time.Duration)   { c.now = now }
func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// Fail makes every following reading return ErrClockUnavailable.
func (c *ManualClock) Fail(err error) { c.err = err }
func (c *ManualClock) Recover()       { c.err = nil }
