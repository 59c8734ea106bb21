package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("cell 0 = %U after unset", c.Grid[0][0])
	}

	// Out of range is ignored.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{13, 10, true},
		{10, 7, true},
		{12, 12, true},
		{13, 13, false},
		{14, 10, false},
	}
	for _, tt := range tests {
		if got := c.IsSet(tt.x, tt.y); got != tt.want {
			t.Errorf("IsSet(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawCircleOutline(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)
	for _, p := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("(%d, %d) not on outline", p[0], p[1])
		}
	}
	if c.IsSet(10, 10) {
		t.Error("outline filled its center")
	}
}

func TestRenderRangeKeepsGlyphs(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Pen = lipgloss.Color("#ff0000")
	c.Set(0, 0)
	c.Pen = ""
	c.Set(6, 0)

	if got := c.Colors[0][0]; got != "#ff0000" {
		t.Errorf("color = %q", got)
	}
	if c.Colors[0][3] != "" {
		t.Error("pen-less dot got a color")
	}
	plain := c.RenderRange(0, 1, 4)
	if plain != string(c.Grid[0][1:4]) {
		t.Errorf("uncolored range = %q", plain)
	}
	if c.RenderRange(0, 3, 10) != string(c.Grid[0][3]) {
		t.Error("range past the edge not clipped")
	}
	if c.RenderRange(5, 0, 4) != "" {
		t.Error("row past the edge rendered")
	}
}

func TestSceneDrawsPendulum(t *testing.T) {
	p := physics.DefaultParams()
	p.PxPerM = 10
	s := NewScene(40, 20, ThemeClassic)

	f := sim.Frame{
		Pivot:  r2.Vec{X: 4, Y: 1},
		Bob:    r2.Vec{X: 4, Y: 5},
		Params: p,
		State:  physics.RestState(p),
	}
	s.Draw(f)

	if !s.Canvas.IsSet(40, 10) {
		t.Error("pivot not drawn")
	}
	if !s.Canvas.IsSet(40, 30) {
		t.Error("rod not drawn")
	}
	if !s.Canvas.IsSet(40, 50) {
		t.Error("bob not drawn")
	}
	if s.Canvas.Colors[12][20] != ThemeClassic.Bob {
		t.Errorf("resting bob color = %q, want %q", s.Canvas.Colors[12][20], ThemeClassic.Bob)
	}

	f.Bob = r2.Vec{X: 1, Y: 1}
	s.Draw(f)
	if s.Canvas.IsSet(40, 50) {
		t.Error("previous frame still on the canvas")
	}
	if s.Frames() != 2 {
		t.Errorf("frames = %d", s.Frames())
	}

	s.Clear()
	if strings.Trim(s.Canvas.String(), "⠀\n") != "" {
		t.Error("canvas not empty after Clear")
	}
}

func TestBobColorBlends(t *testing.T) {
	th := ThemeCyberpunk
	if got := th.BobColor(0, 4); got != th.Bob {
		t.Errorf("still bob = %q, want %q", got, th.Bob)
	}
	if got := th.BobColor(100, 4); got != th.BobFast {
		t.Errorf("fast bob = %q, want %q", got, th.BobFast)
	}
	mid := th.BobColor(2, 4)
	if mid == th.Bob || mid == th.BobFast {
		t.Errorf("half speed color = %q, want a blend", mid)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "classic" {
		t.Error("unknown theme should fall back to classic")
	}
	seen := map[string]bool{}
	th := ThemeClassic
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != ThemeClassic.Name {
		t.Errorf("NextTheme did not cycle: %v", seen)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
