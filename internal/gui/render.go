package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/springsim/internal/panel"
	"github.com/san-kum/springsim/internal/sim"
)

const rodWidth = 3

// surface keeps the latest frame for the draw pass. Raylib can only draw
// between BeginDrawing and EndDrawing, which the controller knows nothing
// about.
type surface struct {
	frame   sim.Frame
	visible bool
}

func (s *surface) Draw(f sim.Frame) {
	s.frame = f
	s.visible = true
}

func (s *surface) Clear() {
	s.visible = false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.surface.visible {
		a.drawPendulum(a.surface.frame)
	}
	a.drawPanel()
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawPendulum(f sim.Frame) {
	px := f.Params.PxPerM
	pivot := toVector2(r2.Scale(px, f.Pivot))
	bob := toVector2(r2.Scale(px, f.Bob))

	rl.DrawCircleV(pivot, float32(f.Params.RPivot*px), ColPivot)
	rl.DrawLineEx(pivot, bob, rodWidth, ColPivot)
	rl.DrawCircleV(bob, float32(f.Params.RBob*px), ColBob)
}

func (a *App) drawPanel() {
	p := a.panel
	pos := p.Position()
	x0, y0 := int32(pos.X*cellW), int32(pos.Y*cellH)
	w := int32(p.Width * cellW)
	h := int32(p.Height() * cellH)

	rl.DrawRectangle(x0, y0, w, h, ColPanel)
	rl.DrawRectangle(x0, y0, w, cellH, ColHeader)
	arrow := "v"
	if p.Collapsed() {
		arrow = ">"
	}
	a.drawText(arrow+"  "+p.Title, x0+cellW/2, y0+2, ColSelect)

	rows := int(math.Ceil(p.Height())) - panel.HeaderHeight
	for i := 0; i < rows && i < len(p.Fields); i++ {
		f := p.Fields[i]
		y := y0 + int32(i+panel.HeaderHeight)*cellH
		color := ColText
		if f == p.Selected() {
			color = ColSelect
		}
		a.drawText(f.Name, x0+cellW/2, y+2, color)

		// slider track and knob over columns 7 to 19
		trackX, trackW := x0+7*cellW, int32(12*cellW)
		rl.DrawRectangle(trackX, y+cellH/2-1, trackW, 2, ColTextDim)
		knob := float32(trackX) + float32(f.Fraction())*float32(trackW-cellW) + cellW/2
		rl.DrawCircleV(rl.NewVector2(knob, float32(y+cellH/2)), 5, color)

		text := f.Input.Value()
		if p.Editing() && f == p.Selected() {
			text += "_"
		}
		a.drawText(text, trackX+trackW+cellW, y+2, color)
	}
}

func (a *App) drawHUD() {
	height := int32(rl.GetScreenHeight())
	s := a.ctrl.Session()

	state := "running"
	if !a.ctrl.Running() {
		state = "paused"
	}
	a.drawText(s.Readout(), 12, height-54, ColInk)
	a.drawText(state+"  "+a.status, 12, height-32, ColTextDim)
	hint := "space pause  c clear  r reset  p panel  tab/arrows edit  enter type  q quit"
	a.drawText(hint, 12, height-12-fontSize/2, ColTextDim)
}

func (a *App) drawText(text string, x, y int32, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, color)
}

func toVector2(v r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
