package gui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/panel"
	"github.com/san-kum/springsim/internal/sim"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	targetFPS    = 60

	// The panel is laid out in cells of this many pixels.
	cellW = 10
	cellH = 22

	fontSize        = 18
	defaultFontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(250, 250, 250, 255)
	ColPivot   = rl.NewColor(0x33, 0x33, 0x33, 255)
	ColBob     = rl.NewColor(0xcc, 0xcc, 0xcc, 255)
	ColPanel   = rl.NewColor(30, 30, 30, 235)
	ColHeader  = rl.NewColor(50, 50, 50, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColInk     = rl.NewColor(40, 40, 40, 255)
)

type Options struct {
	Config   *config.Config
	Log      *zap.Logger
	FontPath string
}

// raylibClock reads the time raylib has been running.
type raylibClock struct{}

func (raylibClock) Now() (time.Duration, error) {
	return time.Duration(rl.GetTime() * float64(time.Second)), nil
}

type App struct {
	ctrl    *sim.Controller
	queue   *sim.FrameQueue
	clock   sim.Clock
	surface *surface
	panel   *panel.Panel
	font    rl.Font
	log     *zap.Logger

	focused  bool
	touching bool
	last     rl.Vector2
	status   string
	quit     bool
	err      error
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "springsim")
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font and enables bilinear filtering.
// raylib falls back to its built-in font when the file is missing.
func loadFont(path string) rl.Font {
	if path == "" {
		path = defaultFontPath
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the controller for an open window.
func NewApp(opts Options, clock sim.Clock) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := clock.Now(); err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}

	queue := sim.NewFrameQueue()
	surf := &surface{}
	session := sim.NewSession(cfg.Params, cfg.Options(), clock, log)
	a := &App{
		ctrl:    sim.NewController(session, queue, surf, log),
		queue:   queue,
		clock:   clock,
		surface: surf,
		panel:   panel.ForParams(cfg.Params),
		log:     log,
		focused: true,
	}
	a.panel.MoveTo(1, 1)
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(opts, raylibClock{})
	if err != nil {
		return err
	}
	app.font = loadFont(opts.FontPath)
	defer rl.UnloadFont(app.font)

	app.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	app.ctrl.Start()
	app.log.Info("gui started", zap.Int("width", rl.GetScreenWidth()), zap.Int("height", rl.GetScreenHeight()))
	app.RunLoop()
	return app.err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit && a.err == nil {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	now, err := a.clock.Now()
	if err != nil {
		a.fail(fmt.Errorf("frame: %w", err))
		return
	}
	if rl.IsWindowResized() {
		a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	a.trackFocus()
	a.handlePointer()
	a.handleKeys()
	a.panel.Animate()
	a.queue.Flush(now)
}

func (a *App) resize(width, height int) {
	a.ctrl.Resize(float64(width), float64(height))
	a.panel.SetWindow(float64(width)/cellW, float64(height)/cellH)
}

func (a *App) trackFocus() {
	focused := rl.IsWindowFocused()
	if focused == a.focused {
		return
	}
	a.focused = focused
	if focused {
		a.ctrl.Focus()
		return
	}
	a.panel.EndDrag()
	a.handle(a.ctrl.Blur())
}

// handlePointer turns mouse and touch state into press/move/release.
// Desktop raylib mirrors the left button as touch point 0, so a touch is
// only a touch when the mouse button is not down.
func (a *App) handlePointer() {
	kind := sim.Mouse
	pos := rl.GetMousePosition()
	pressed := rl.IsMouseButtonPressed(rl.MouseLeftButton)
	released := rl.IsMouseButtonReleased(rl.MouseLeftButton)

	touches := int(rl.GetTouchPointCount())
	if (touches > 0 && !rl.IsMouseButtonDown(rl.MouseLeftButton)) || a.touching {
		kind = sim.Touch
		if touches > 0 {
			pos = rl.GetTouchPosition(0)
		}
		pressed = touches > 0 && !a.touching
		released = touches == 0 && a.touching
		a.touching = touches > 0
	}

	moved := pos != a.last
	a.last = pos
	x, y := float64(pos.X), float64(pos.Y)
	cx, cy := x/cellW, y/cellH
	ev := sim.PointerEvent{Kind: kind, X: x, Y: y}

	switch {
	case pressed:
		switch {
		case a.panel.ToggleHit(cx, cy):
			a.panel.ToggleCollapse()
		case a.panel.BeginDrag(cx, cy):
		case a.panel.Contains(cx, cy):
			if c, ok := a.panel.Click(cx, cy); ok {
				a.apply(c)
			}
		default:
			a.handle(a.ctrl.PointerDown(ev))
		}
	case released:
		if a.panel.Dragging() {
			a.panel.EndDrag()
			return
		}
		a.handle(a.ctrl.PointerUp(ev))
	case moved:
		if a.panel.Dragging() {
			a.panel.DragTo(cx, cy)
			return
		}
		a.handle(a.ctrl.PointerMove(ev))
	}
}

func (a *App) handleKeys() {
	if a.panel.Editing() {
		a.handleEditKeys()
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.ctrl.ToggleAnimation()
	case rl.IsKeyPressed(rl.KeyC):
		a.ctrl.Clear()
	case rl.IsKeyPressed(rl.KeyR):
		a.ctrl.Reset()
		a.panel.Sync(a.ctrl.Session().Params())
		a.status = "reset"
	case rl.IsKeyPressed(rl.KeyP):
		a.panel.ToggleCollapse()
	case rl.IsKeyPressed(rl.KeyTab):
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			a.panel.Prev()
		} else {
			a.panel.Next()
		}
	case rl.IsKeyPressed(rl.KeyLeft):
		if c, ok := a.panel.Nudge(-1); ok {
			a.apply(c)
		}
	case rl.IsKeyPressed(rl.KeyRight):
		if c, ok := a.panel.Nudge(1); ok {
			a.apply(c)
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		a.panel.StartEdit()
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	}
}

// handleEditKeys feeds typed characters to the panel's text box as the
// key messages it understands.
func (a *App) handleEditKeys() {
	var msgs []tea.KeyMsg
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyBackspace})
	case rl.IsKeyPressed(rl.KeyEnter):
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	case rl.IsKeyPressed(rl.KeyEscape):
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEsc})
	}
	for _, msg := range msgs {
		change, _, err := a.panel.Update(msg)
		if err != nil {
			a.status = err.Error()
		}
		if change != nil {
			a.apply(*change)
		}
	}
}

func (a *App) apply(c panel.Change) {
	if err := a.ctrl.SetParam(c.Name, c.Value); err != nil {
		a.status = err.Error()
		return
	}
	a.panel.Sync(a.ctrl.Session().Params())
	a.status = fmt.Sprintf("%s = %g", c.Name, c.Value)
}

func (a *App) handle(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, sim.ErrClockUnavailable) {
		a.fail(err)
		return
	}
	a.status = err.Error()
}

func (a *App) fail(err error) {
	a.err = err
	a.log.Error("gui stopped", zap.Error(err))
}
