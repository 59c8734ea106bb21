// Package tui hosts the pendulum in a terminal. The braille canvas maps one
// sub-pixel to one input pixel, the mouse drives the bob, and the control
// panel floats over the canvas.
package tui

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/export"
	"github.com/san-kum/springsim/internal/orbit"
	"github.com/san-kum/springsim/internal/panel"
	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/viz"
)

const (
	ScenePendulum = "pendulum"
	SceneOrbit    = "orbit"

	frameRate     = 60
	energyHistory = 240
	// The energy graph is shown only in terminals at least this tall.
	graphMinHeight = 30
	graphHeight    = 4
	graphLines     = graphHeight + 2
	canvasTop      = 1
	snapshotScale  = 4
)

var ErrUnknownScene = errors.New("unknown scene")

type Options struct {
	Config      *config.Config
	Scene       string
	Theme       string
	SnapshotDir string
	Log         *zap.Logger
	// Clock and Rand default to the wall clock and a random seed.
	Clock sim.Clock
	Rand  *rand.Rand
}

// TickMsg drives one frame.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Model struct {
	scene       string
	snapshotDir string
	log         *zap.Logger
	clock       sim.Clock

	queue   *sim.FrameQueue
	ctrl    *sim.Controller
	surface *viz.Scene
	panel   *panel.Panel

	orbit        *orbit.Orbit
	orbitCanvas  *viz.Canvas
	orbitRunning bool

	theme  viz.Theme
	keys   keyMap
	help   help.Model
	energy []float64

	width, height int
	status        string
	err           error
}

func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	scene := opts.Scene
	if scene == "" {
		scene = ScenePendulum
	}
	if scene != ScenePendulum && scene != SceneOrbit {
		return Model{}, fmt.Errorf("%w: %q", ErrUnknownScene, scene)
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = sim.NewSystemClock()
	}
	if _, err := clock.Now(); err != nil {
		return Model{}, fmt.Errorf("startup: %w", err)
	}

	theme := viz.GetTheme(opts.Theme)
	queue := sim.NewFrameQueue()
	surface := viz.NewScene(0, 0, theme)
	session := sim.NewSession(cfg.Params, cfg.Options(), clock, log)
	ctrl := sim.NewController(session, queue, surface, log)

	o := orbit.New(opts.Rand)
	o.DotRadius = 1

	m := Model{
		scene:        scene,
		snapshotDir:  opts.SnapshotDir,
		log:          log,
		clock:        clock,
		queue:        queue,
		ctrl:         ctrl,
		surface:      surface,
		panel:        panel.ForParams(cfg.Params),
		orbit:        o,
		orbitCanvas:  viz.NewCanvas(0, 0),
		orbitRunning: true,
		keys:         defaultKeys(),
		help:         help.New(),
	}
	m.setTheme(theme)
	if scene == ScenePendulum {
		ctrl.Start()
	}
	log.Info("tui started", zap.String("scene", scene), zap.String("theme", theme.Name))
	return m, nil
}

// Run opens the terminal program and blocks until it quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), tea.SetWindowTitle("springsim"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.onTick()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.MouseMsg:
		return m.onMouse(msg)
	case tea.FocusMsg:
		m.ctrl.Focus()
		return m, nil
	case tea.BlurMsg:
		m.panel.EndDrag()
		return m.handle(m.ctrl.Blur())
	}
	if m.panel.Editing() {
		_, cmd, _ := m.panel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) onTick() (tea.Model, tea.Cmd) {
	now, err := m.clock.Now()
	if err != nil {
		return m.fail(fmt.Errorf("frame: %w", err))
	}
	m.panel.Animate()

	switch m.scene {
	case SceneOrbit:
		if m.orbitRunning {
			m.drawDot(m.orbit.Step())
		}
	default:
		if m.queue.Flush(now) > 0 {
			m.energy = append(m.energy, m.ctrl.LastFrame().Energy)
			if len(m.energy) > energyHistory {
				m.energy = m.energy[len(m.energy)-energyHistory:]
			}
		}
	}
	return m, tick()
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.panel.Editing() {
		change, cmd, err := m.panel.Update(msg)
		if err != nil {
			m.status = err.Error()
			return m, cmd
		}
		if change != nil {
			m.apply(*change)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		if m.scene == SceneOrbit {
			m.orbitRunning = !m.orbitRunning
		} else {
			m.ctrl.ToggleAnimation()
		}
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.Clear()
		m.orbit.Clear()
		m.orbitCanvas.Clear()
		m.energy = m.energy[:0]
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.panel.Sync(m.ctrl.Session().Params())
		m.orbit.Reset()
		m.orbitCanvas.Clear()
		m.energy = m.energy[:0]
		m.status = "reset"
	case key.Matches(msg, m.keys.Panel):
		m.panel.ToggleCollapse()
	case key.Matches(msg, m.keys.Next):
		m.panel.Next()
	case key.Matches(msg, m.keys.Prev):
		m.panel.Prev()
	case key.Matches(msg, m.keys.Less):
		if c, ok := m.panel.Nudge(-1); ok {
			m.apply(c)
		}
	case key.Matches(msg, m.keys.More):
		if c, ok := m.panel.Nudge(1); ok {
			m.apply(c)
		}
	case key.Matches(msg, m.keys.Edit):
		return m, m.panel.StartEdit()
	case key.Matches(msg, m.keys.Snapshot):
		m.snapshot()
	case key.Matches(msg, m.keys.Theme):
		m.setTheme(viz.NextTheme(m.theme))
	}
	return m, nil
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := float64(msg.X), float64(msg.Y-canvasTop)
	ev := sim.PointerEvent{Kind: sim.Mouse, X: x*2 + 1, Y: y*4 + 2}
	held := m.ctrl.Session().Mode() != sim.Idle

	var err error
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch {
		case m.panel.ToggleHit(x, y):
			m.panel.ToggleCollapse()
		case m.panel.BeginDrag(x, y):
		case m.panel.Contains(x, y):
			if c, ok := m.panel.Click(x, y); ok {
				m.apply(c)
			}
		case m.scene == ScenePendulum:
			err = m.ctrl.PointerDown(ev)
		}
	case tea.MouseActionMotion:
		switch {
		case m.panel.Dragging():
			m.panel.DragTo(x, y)
		case held:
			err = m.ctrl.PointerMove(ev)
		}
	case tea.MouseActionRelease:
		switch {
		case m.panel.Dragging():
			m.panel.EndDrag()
		case held:
			err = m.ctrl.PointerUp(ev)
		}
	}
	return m.handle(err)
}

// handle stops the program on clock failures and shows anything else.
func (m Model) handle(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	if errors.Is(err, sim.ErrClockUnavailable) {
		return m.fail(err)
	}
	m.status = err.Error()
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.log.Error("tui stopped", zap.Error(err))
	return m, tea.Quit
}

func (m *Model) apply(c panel.Change) {
	if err := m.ctrl.SetParam(c.Name, c.Value); err != nil {
		m.status = err.Error()
		return
	}
	m.panel.Sync(m.ctrl.Session().Params())
	m.status = fmt.Sprintf("%s = %g", c.Name, c.Value)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := m.canvasRows()
	m.surface.Canvas.Resize(width, rows)
	m.orbitCanvas.Resize(width, rows)
	m.panel.SetWindow(float64(width), float64(rows))
	m.help.Width = width

	pw, ph := m.surface.Canvas.PixelSize()
	m.ctrl.Resize(float64(pw), float64(ph))
	m.orbit.Resize(float64(pw), float64(ph))
	m.orbit.Radius = min(orbit.DefaultRadius, 0.45*float64(min(pw, ph)))
	for _, d := range m.orbit.Trail() {
		m.drawDot(d)
	}
	if !m.ctrl.Running() && m.ctrl.Session().Ticks() > 0 {
		m.surface.Draw(m.ctrl.LastFrame())
	}
}

func (m Model) canvasRows() int {
	rows := m.height - canvasTop - 1
	if m.scene == ScenePendulum && m.height >= graphMinHeight {
		rows -= graphLines
	}
	return max(rows, 1)
}

func (m *Model) drawDot(d orbit.Dot) {
	c := m.orbitCanvas
	c.Pen = lipgloss.Color(d.Color.Clamped().Hex())
	c.FillCircle(round(d.Pos.X), round(d.Pos.Y), round(m.orbit.DotRadius))
	c.Pen = ""
}

func (m *Model) setTheme(t viz.Theme) {
	m.theme = t
	m.surface.Theme = t
	m.panel.Styles = panelStyles(t)
}

func (m *Model) snapshot() {
	canvas := m.surface.Canvas
	if m.scene == SceneOrbit {
		canvas = m.orbitCanvas
	}
	name := fmt.Sprintf("springsim-%d.svg", time.Now().UnixNano())
	path := filepath.Join(m.snapshotDir, name)
	if err := export.SaveSVG(path, export.CanvasToSVG(canvas, snapshotScale)); err != nil {
		m.status = err.Error()
		m.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	m.status = "saved " + path
	m.log.Info("snapshot saved", zap.String("path", path))
}

// Err is why the program stopped, if it stopped on an error.
func (m Model) Err() error { return m.err }
