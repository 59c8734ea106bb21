package sim

import (
	"time"

	"github.com/san-kum/springsim/internal/physics"
)

// Options are the controller constants. They are validated by the config
// package before they get here.
type Options struct {
	MaxFrameStep       time.Duration
	DragIdleTimeout    time.Duration
	MouseHitScale      float64
	TouchHitScale      float64
	MaxDragSpeed       float64
	InitialTheta       float64
	NotDraggingMessage string
}

func DefaultOptions() Options {
	return Options{
		MaxFrameStep:       30 * time.Millisecond,
		DragIdleTimeout:    50 * time.Millisecond,
		MouseHitScale:      2,
		TouchHitScale:      3,
		MaxDragSpeed:       physics.DefaultMaxDragSpeed,
		InitialTheta:       0.1,
		NotDraggingMessage: "Not dragging",
	}
}

func (o Options) hitScale(k PointerKind) float64 {
	if k == Touch {
		return o.TouchHitScale
	}
	return o.MouseHitScale
}
