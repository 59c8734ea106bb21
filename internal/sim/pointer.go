package sim

// PointerKind distinguishes mouse from touch input. Touch gets a larger
// hit radius around the bob.
type PointerKind int

const (
	Mouse PointerKind = iota
	Touch
)

func (k PointerKind) String() string {
	if k == Touch {
		return "touch"
	}
	return "mouse"
}

// PointerEvent is a press, move or release at (X, Y) input pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Mode is the drag gesture state.
type Mode int

const (
	Idle Mode = iota
	DraggingBob
	DraggingCanvas
)

func (m Mode) String() string {
	switch m {
	case DraggingBob:
		return "dragging-bob"
	case DraggingCanvas:
		return "dragging-canvas"
	default:
		return "idle"
	}
}
