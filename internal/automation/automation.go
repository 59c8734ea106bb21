package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/storage"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Event types understood by scenarios.
const (
	PointerDown     = "pointer_down"
	PointerMove     = "pointer_move"
	PointerUp       = "pointer_up"
	Blur            = "blur"
	Focus           = "focus"
	Reset           = "reset"
	Clear           = "clear"
	SetParam        = "set_param"
	ToggleAnimation = "toggle_animation"
	Resize          = "resize"
)

// Scenario is a timeline of input replayed against a fresh session in
// virtual time.
type Scenario struct {
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description"`
	Params        map[string]float64 `yaml:"params"`
	Duration      time.Duration      `yaml:"duration"`
	FrameInterval time.Duration      `yaml:"frame_interval"`
	Width         float64            `yaml:"width"`
	Height        float64            `yaml:"height"`
	Events        []Event            `yaml:"events"`
}

// Event is one input at time At. Pointer coordinates are pixels. With
// OnBob a press lands on the bob's current position plus (X, Y); with
// Relative a move or release is offset from where the gesture began.
type Event struct {
	At       time.Duration `yaml:"at"`
	Type     string        `yaml:"type"`
	Pointer  string        `yaml:"pointer"`
	X        float64       `yaml:"x"`
	Y        float64       `yaml:"y"`
	OnBob    bool          `yaml:"on_bob"`
	Relative bool          `yaml:"relative"`
	Name     string        `yaml:"name"`
	Value    float64       `yaml:"value"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, ev := range s.Events {
		switch ev.Type {
		case PointerDown, PointerMove, PointerUp, Blur, Focus, Reset, Clear, SetParam, ToggleAnimation, Resize:
		default:
			return fmt.Errorf("event %d: %w: %q", i, ErrUnknownEvent, ev.Type)
		}
		if ev.Pointer != "" && ev.Pointer != "mouse" && ev.Pointer != "touch" {
			return fmt.Errorf("event %d: unknown pointer %q", i, ev.Pointer)
		}
		if ev.At < 0 {
			return fmt.Errorf("event %d: negative time %v", i, ev.At)
		}
	}
	return nil
}

// Result is what a replay produced.
type Result struct {
	Scenario string
	Frames   int
	Samples  []storage.Sample
	Metrics  map[string]float64
	Final    sim.Frame
	Clears   int
	Params   map[string]float64
}

// Run replays the scenario on top of cfg. Scenario params and sizes
// override the config; a zero duration or interval falls back to it.
// Events timed after the duration never fire.
func Run(ctx context.Context, sc *Scenario, cfg *config.Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	params := cfg.Params
	if err := configure(&params, sc.Params); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	duration, interval := sc.Duration, sc.FrameInterval
	if duration == 0 {
		duration = cfg.Run.Duration
	}
	if interval == 0 {
		interval = cfg.Run.FrameInterval
	}
	width, height := sc.Width, sc.Height
	if width == 0 || height == 0 {
		width, height = cfg.Run.Width, cfg.Run.Height
	}

	clock := sim.NewManualClock()
	queue := sim.NewFrameQueue()
	rec := storage.NewRecorder(nil)
	session := sim.NewSession(params, cfg.Options(), clock, log)
	ctrl := sim.NewController(session, queue, rec, log)
	ctrl.Resize(width, height)
	ctrl.Start()

	r := &replay{ctrl: ctrl, events: sortedEvents(sc.Events), log: log}
	h := &sim.Headless{Controller: ctrl, Queue: queue, Clock: clock, Interval: interval}

	log.Info("scenario started",
		zap.String("name", sc.Name),
		zap.Duration("duration", duration),
		zap.Int("events", len(sc.Events)))

	frames, err := h.Run(ctx, duration, r.apply)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	return &Result{
		Scenario: sc.Name,
		Frames:   frames,
		Samples:  rec.Samples(),
		Metrics:  rec.Metrics(),
		Final:    rec.Last(),
		Clears:   rec.Clears(),
		Params:   session.Params().GetParams(),
	}, nil
}

func sortedEvents(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

type replay struct {
	ctrl   *sim.Controller
	events []Event
	next   int
	origin [2]float64
	log    *zap.Logger
}

// apply fires every event due at or before now.
func (r *replay) apply(now time.Duration) error {
	for r.next < len(r.events) && r.events[r.next].At <= now {
		ev := r.events[r.next]
		if err := r.fire(ev); err != nil {
			return fmt.Errorf("event %d (%s at %v): %w", r.next, ev.Type, ev.At, err)
		}
		r.log.Debug("event applied", zap.String("type", ev.Type), zap.Duration("at", ev.At))
		r.next++
	}
	return nil
}

func (r *replay) fire(ev Event) error {
	switch ev.Type {
	case PointerDown:
		x, y := ev.X, ev.Y
		if ev.OnBob {
			s := r.ctrl.Session()
			x += s.Bob().X * s.Params().PxPerM
			y += s.Bob().Y * s.Params().PxPerM
		}
		r.origin = [2]float64{x, y}
		return r.ctrl.PointerDown(sim.PointerEvent{Kind: pointerKind(ev.Pointer), X: x, Y: y})
	case PointerMove:
		return r.ctrl.PointerMove(r.pointer(ev))
	case PointerUp:
		return r.ctrl.PointerUp(r.pointer(ev))
	case Blur:
		return r.ctrl.Blur()
	case Focus:
		r.ctrl.Focus()
	case Reset:
		r.ctrl.Reset()
	case Clear:
		r.ctrl.Clear()
	case SetParam:
		return r.ctrl.SetParam(ev.Name, ev.Value)
	case ToggleAnimation:
		r.ctrl.ToggleAnimation()
	case Resize:
		r.ctrl.Resize(ev.Width, ev.Height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

func (r *replay) pointer(ev Event) sim.PointerEvent {
	x, y := ev.X, ev.Y
	if ev.Relative {
		x += r.origin[0]
		y += r.origin[1]
	}
	return sim.PointerEvent{Kind: pointerKind(ev.Pointer), X: x, Y: y}
}

func pointerKind(name string) sim.PointerKind {
	if name == "touch" {
		return sim.Touch
	}
	return sim.Mouse
}

// Headless is a scenario with no input: the pendulum swings on its own.
func Headless(name string) *Scenario {
	return &Scenario{Name: name}
}

// configure applies overrides in name order, so the first bad name
// reported is stable.
func configure(target dynamo.Configurable, overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := target.SetParam(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}
