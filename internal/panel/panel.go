// Package panel is the pendulum's control panel: a draggable, collapsible
// box of parameter fields. It is measured in terminal cells but knows
// nothing about the terminal; hosts feed it pointer positions and keys.
package panel

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/physics"
)

const (
	HeaderHeight = 1
	// RowHeight is the height each field adds to the expanded panel.
	RowHeight    = 1
	DefaultWidth = 34

	labelWidth  = 7
	sliderWidth = 12

	springFrequency = 8.0
	springDamping   = 1.0
	settleEpsilon   = 0.01
)

// Change is a parameter edit for the host to apply.
type Change struct {
	Name  string
	Value float64
}

type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Value    lipgloss.Style
	Body     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#333333")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#cccccc")),
		Body:     lipgloss.NewStyle().Background(lipgloss.Color("#111111")),
	}
}

type Panel struct {
	Title  string
	Width  float64
	Fields []*Field
	Styles Styles

	collapsed bool
	selected  int
	editing   bool

	// pos is where drags have moved the panel. It may leave the window
	// while a drag is in progress; Position clamps it for display.
	pos      r2.Vec
	grab     r2.Vec
	dragging bool
	window   r2.Vec

	spring   harmonica.Spring
	height   float64
	velocity float64
}

func New(title string, fields []*Field) *Panel {
	p := &Panel{
		Title:  title,
		Width:  DefaultWidth,
		Fields: fields,
		Styles: DefaultStyles(),
		spring: harmonica.NewSpring(harmonica.FPS(60), springFrequency, springDamping),
	}
	p.height = p.TargetHeight()
	return p
}

// ForParams builds a panel holding every pendulum parameter.
func ForParams(params physics.Params) *Panel {
	return New("Controls", FieldsFor(params))
}

// ClampToWindow keeps pos inside [0, limit] on both axes. A negative limit,
// from a panel larger than the window, is not special-cased: a coordinate
// below zero goes to zero and anything else to at most limit.
func ClampToWindow(pos, limit r2.Vec) r2.Vec {
	return r2.Vec{X: clampAxis(pos.X, limit.X), Y: clampAxis(pos.Y, limit.Y)}
}

func clampAxis(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// SetWindow records the window size the panel must stay inside.
func (p *Panel) SetWindow(width, height float64) {
	p.window = r2.Vec{X: width, Y: height}
}

func (p *Panel) Size() r2.Vec {
	return r2.Vec{X: p.Width, Y: math.Ceil(p.height)}
}

// Position is the displayed top-left corner.
func (p *Panel) Position() r2.Vec {
	return ClampToWindow(p.pos, r2.Sub(p.window, p.Size()))
}

func (p *Panel) MoveTo(x, y float64) {
	p.pos = ClampToWindow(r2.Vec{X: x, Y: y}, r2.Sub(p.window, p.Size()))
}

func (p *Panel) Contains(x, y float64) bool {
	pos, size := p.Position(), p.Size()
	return x >= pos.X && x < pos.X+size.X && y >= pos.Y && y < pos.Y+size.Y
}

func (p *Panel) HeaderContains(x, y float64) bool {
	pos := p.Position()
	return x >= pos.X && x < pos.X+p.Width && y >= pos.Y && y < pos.Y+HeaderHeight
}

// BeginDrag starts moving the panel when (x, y) is on its header.
func (p *Panel) BeginDrag(x, y float64) bool {
	if !p.HeaderContains(x, y) {
		return false
	}
	p.pos = p.Position()
	p.grab = r2.Vec{X: x, Y: y}
	p.dragging = true
	return true
}

// DragTo moves the panel by the pointer's movement since the last call.
func (p *Panel) DragTo(x, y float64) {
	if !p.dragging {
		return
	}
	at := r2.Vec{X: x, Y: y}
	p.pos = r2.Add(p.pos, r2.Sub(at, p.grab))
	p.grab = at
}

// EndDrag stores the clamped position. Hosts call it on release and on
// focus loss.
func (p *Panel) EndDrag() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.pos = p.Position()
}

func (p *Panel) Dragging() bool { return p.dragging }

// ToggleHit reports whether (x, y) is on the collapse arrow.
func (p *Panel) ToggleHit(x, y float64) bool {
	pos := p.Position()
	return p.HeaderContains(x, y) && x < pos.X+3
}

// Click selects the field row under (x, y). A click on the row's slider
// also moves the knob there.
func (p *Panel) Click(x, y float64) (Change, bool) {
	if p.collapsed || p.editing || !p.Contains(x, y) {
		return Change{}, false
	}
	pos := p.Position()
	row := int(y-pos.Y) - HeaderHeight
	if row < 0 || row >= len(p.Fields) {
		return Change{}, false
	}
	p.selected = row
	col := x - pos.X - labelWidth
	if col < 0 || col >= sliderWidth {
		return Change{}, false
	}
	f := p.Fields[row]
	return Change{Name: f.Name, Value: f.SetFraction(col / (sliderWidth - 1))}, true
}

func (p *Panel) ToggleCollapse() {
	p.collapsed = !p.collapsed
	if p.collapsed {
		p.editing = false
	}
}

func (p *Panel) Collapsed() bool { return p.collapsed }

func (p *Panel) TargetHeight() float64 {
	if p.collapsed {
		return HeaderHeight
	}
	return HeaderHeight + float64(len(p.Fields)*RowHeight)
}

// Height is the current animated height.
func (p *Panel) Height() float64 { return p.height }

// Animate advances the collapse spring one frame and reports whether it
// is still moving.
func (p *Panel) Animate() bool {
	target := p.TargetHeight()
	p.height, p.velocity = p.spring.Update(p.height, p.velocity, target)
	if math.Abs(p.height-target) < settleEpsilon && math.Abs(p.velocity) < settleEpsilon {
		p.height, p.velocity = target, 0
		return false
	}
	return true
}

func (p *Panel) Selected() *Field {
	if len(p.Fields) == 0 {
		return nil
	}
	return p.Fields[p.selected]
}

func (p *Panel) Next() { p.move(1) }
func (p *Panel) Prev() { p.move(-1) }

func (p *Panel) move(d int) {
	if n := len(p.Fields); n > 0 && !p.editing {
		p.selected = (p.selected + d + n) % n
	}
}

// Nudge moves the selected slider by dir steps.
func (p *Panel) Nudge(dir int) (Change, bool) {
	f := p.Selected()
	if f == nil || p.collapsed || p.editing {
		return Change{}, false
	}
	return Change{Name: f.Name, Value: f.Nudge(dir)}, true
}

// StartEdit focuses the selected field's text box.
func (p *Panel) StartEdit() tea.Cmd {
	f := p.Selected()
	if f == nil || p.collapsed {
		return nil
	}
	p.editing = true
	f.Input.CursorEnd()
	return tea.Batch(f.Input.Focus(), textinput.Blink)
}

func (p *Panel) Editing() bool { return p.editing }

// Update routes messages to the text box being edited. Enter commits and
// esc restores the field's value. A commit that does not parse returns
// the error and leaves the text in place.
func (p *Panel) Update(msg tea.Msg) (*Change, tea.Cmd, error) {
	f := p.Selected()
	if !p.editing || f == nil {
		return nil, nil, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			p.stopEdit(f)
			v, err := f.CommitText()
			if err != nil {
				return nil, nil, err
			}
			return &Change{Name: f.Name, Value: v}, nil, nil
		case "esc":
			p.stopEdit(f)
			f.SetValue(f.Value())
			return nil, nil, nil
		}
	}
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return nil, cmd, nil
}

func (p *Panel) stopEdit(f *Field) {
	p.editing = false
	f.Input.Blur()
}

// Sync copies params into every field that is not being edited.
func (p *Panel) Sync(params physics.Params) {
	for i, f := range p.Fields {
		if p.editing && i == p.selected {
			continue
		}
		if v, err := params.Get(f.Name); err == nil {
			f.SetValue(v)
		}
	}
}

// Lines renders the panel one string per row, each Width cells wide.
// Rows past the animated height are cut off.
func (p *Panel) Lines() []string {
	w := int(p.Width)

	arrow := "▾"
	if p.collapsed {
		arrow = "▸"
	}
	lines := []string{p.Styles.Header.Width(w).MaxWidth(w).Render(" " + arrow + " " + p.Title)}

	rows := int(math.Ceil(p.height)) - HeaderHeight
	for i := 0; i < rows && i < len(p.Fields); i++ {
		f := p.Fields[i]
		label := p.Styles.Label
		if i == p.selected {
			label = p.Styles.Selected
		}
		value := p.Styles.Value.Render(f.Input.Value())
		if p.editing && i == p.selected {
			value = f.Input.View()
		}
		row := label.Width(labelWidth).Render(" "+f.Name) + f.Slider(sliderWidth) + " " + value
		lines = append(lines, p.Styles.Body.Width(w).MaxWidth(w).Render(row))
	}
	return lines
}

func (p *Panel) View() string {
	return strings.Join(p.Lines(), "\n")
}
