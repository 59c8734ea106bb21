package panel

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/physics"
)

func TestClampToWindow(t *testing.T) {
	tests := []struct {
		name  string
		pos   r2.Vec
		limit r2.Vec
		want  r2.Vec
	}{
		{"inside", r2.Vec{X: 3, Y: 4}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 3, Y: 4}},
		{"negative", r2.Vec{X: -5, Y: -1}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 0, Y: 0}},
		{"past edge", r2.Vec{X: 50, Y: 12}, r2.Vec{X: 10, Y: 8}, r2.Vec{X: 10, Y: 8}},
		{"panel larger than window", r2.Vec{X: 0, Y: 2}, r2.Vec{X: -4, Y: -3}, r2.Vec{X: -4, Y: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToWindow(tt.pos, tt.limit); got != tt.want {
				t.Errorf("ClampToWindow(%v, %v) = %v, want %v", tt.pos, tt.limit, got, tt.want)
			}
		})
	}
}

func TestHeaderDragStaysInWindow(t *testing.T) {
	p := ForParams(physics.DefaultParams())
	p.SetWindow(80, 24)

	if p.BeginDrag(10, 5) {
		t.Fatal("drag started off the header")
	}
	if !p.BeginDrag(2, 0) {
		t.Fatal("drag did not start on the header")
	}
	p.DragTo(12, 3)
	if got := p.Position(); got != (r2.Vec{X: 10, Y: 3}) {
		t.Fatalf("position = %v, want (10, 3)", got)
	}

	p.DragTo(500, 500)
	size := p.Size()
	want := r2.Vec{X: 80 - size.X, Y: 24 - size.Y}
	if got := p.Position(); got != want {
		t.Fatalf("position = %v, want %v", got, want)
	}

	// Coming back moves from the unclamped point, as the pointer does.
	p.DragTo(499, 500)
	if got := p.Position(); got != want {
		t.Fatalf("position after small move back = %v, want %v", got, want)
	}

	p.EndDrag()
	if p.Dragging() {
		t.Fatal("still dragging after EndDrag")
	}
	p.DragTo(0, 0)
	if got := p.Position(); got != want {
		t.Fatalf("moved after EndDrag: %v", got)
	}
}

func TestCollapseSpringsToTarget(t *testing.T) {
	p := ForParams(physics.DefaultParams())
	expanded := p.TargetHeight()
	if want := float64(HeaderHeight + len(physics.ParamNames)*RowHeight); expanded != want {
		t.Fatalf("expanded height = %v, want %v", expanded, want)
	}

	p.ToggleCollapse()
	if p.TargetHeight() != HeaderHeight {
		t.Fatalf("collapsed target = %v", p.TargetHeight())
	}
	if !p.Animate() {
		t.Fatal("spring settled after one frame")
	}
	if p.Height() >= expanded {
		t.Fatalf("height did not start shrinking: %v", p.Height())
	}

	for i := 0; i < 600 && p.Animate(); i++ {
	}
	if p.Height() != HeaderHeight {
		t.Fatalf("height = %v after settling, want %v", p.Height(), HeaderHeight)
	}
	if n := len(p.Lines()); n != 1 {
		t.Fatalf("collapsed panel renders %d lines", n)
	}
}

func TestNudgeClampsAndSnaps(t *testing.T) {
	f := NewField("k", Range{Min: 0, Max: 1, Step: 0.25}, 0.6)
	if v := f.Nudge(1); v != 0.75 {
		t.Errorf("Nudge(1) = %v, want 0.75", v)
	}
	f.Nudge(1)
	if v := f.Nudge(1); v != 1 {
		t.Errorf("Nudge past max = %v, want 1", v)
	}
	if f.Input.Value() != "1" {
		t.Errorf("text box = %q, want synced \"1\"", f.Input.Value())
	}
}

func TestCommitTextKeepsBadInput(t *testing.T) {
	f := NewField("g", Ranges["g"], 9.8)
	f.Input.SetValue("abc")
	_, err := f.CommitText()
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("err = %v, want ErrBadValue", err)
	}
	if f.Value() != 9.8 {
		t.Errorf("value changed to %v", f.Value())
	}
	if f.Input.Value() != "abc" {
		t.Errorf("text box = %q, want the rejected text", f.Input.Value())
	}

	f.Input.SetValue(" 50 ")
	v, err := f.CommitText()
	if err != nil || v != 50 {
		t.Fatalf("CommitText = %v, %v", v, err)
	}
	if f.Fraction() != 1 {
		t.Errorf("slider fraction = %v, want 1 for a value past max", f.Fraction())
	}
}

func TestEditFlow(t *testing.T) {
	p := ForParams(physics.DefaultParams())
	p.Next()
	if p.Selected().Name != "g" {
		t.Fatalf("selected %q, want g", p.Selected().Name)
	}
	p.StartEdit()
	p.Selected().Input.SetValue("1.6")
	p.Next()
	if p.Selected().Name != "g" {
		t.Fatal("selection moved while editing")
	}

	change, _, err := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if err != nil {
		t.Fatal(err)
	}
	if change == nil || change.Name != "g" || change.Value != 1.6 {
		t.Fatalf("change = %+v", change)
	}
	if p.Editing() {
		t.Fatal("still editing after enter")
	}
}

func TestSyncSkipsFieldBeingEdited(t *testing.T) {
	p := ForParams(physics.DefaultParams())
	p.StartEdit()
	p.Selected().Input.SetValue("2.")

	params := physics.DefaultParams()
	params.L0 = 3
	params.K = 7
	p.Sync(params)

	if p.Selected().Input.Value() != "2." {
		t.Errorf("edited text overwritten: %q", p.Selected().Input.Value())
	}
	if p.Fields[2].Value() != 7 {
		t.Errorf("k = %v, want 7", p.Fields[2].Value())
	}
}

func TestSlider(t *testing.T) {
	f := NewField("ldc", Range{Min: 0, Max: 1, Step: 0.1}, 0.5)
	s := f.Slider(11)
	if n := len([]rune(s)); n != 11 {
		t.Fatalf("slider is %d runes", n)
	}
	if idx := strings.IndexRune(s, '●'); len([]rune(s[:idx])) != 5 {
		t.Errorf("knob at %d, want 5: %q", len([]rune(s[:idx])), s)
	}
	if math.IsNaN(NewField("x", Range{}, 1).Fraction()) {
		t.Error("empty range fraction is NaN")
	}
}

func TestClickSelectsAndSlides(t *testing.T) {
	p := ForParams(physics.DefaultParams())
	p.SetWindow(80, 24)

	if _, ok := p.Click(3, 3); ok {
		t.Fatal("click on a label reported a change")
	}
	if p.Selected().Name != "k" {
		t.Fatalf("selected %q, want k", p.Selected().Name)
	}

	change, ok := p.Click(labelWidth+sliderWidth-1, 4)
	if !ok || change.Name != "ldc" || change.Value != Ranges["ldc"].Max {
		t.Fatalf("slider click = %+v, %v", change, ok)
	}

	if !p.ToggleHit(1, 0) || p.ToggleHit(10, 0) {
		t.Error("collapse arrow hit box wrong")
	}
	p.ToggleCollapse()
	if _, ok := p.Click(labelWidth, 4); ok {
		t.Error("collapsed panel accepted a click")
	}
}
