package analysis

import (
	"strings"
)

// Point is one (x, y) sample of a phase portrait.
type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// NewPhasePortrait pairs two recorded series sample by sample.
func NewPhasePortrait(xLabel string, xs []float64, yLabel string, ys []float64) *PhasePortrait2D {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	p := &PhasePortrait2D{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// ASCII renders the portrait in a width x height character grid with axes
// drawn where they fall inside the data range.
func (portrait *PhasePortrait2D) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
