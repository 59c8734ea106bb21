package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels and
// one color, the color of the last dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color

	// Pen colors every dot set after it changes. Empty means no color.
	Pen lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid, dropping whatever was drawn.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]lipgloss.Color, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]lipgloss.Color, c.Width)
	}
	c.Clear()
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.Pen != "" {
		c.Colors[row][col] = c.Pen
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws the outline of a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle lights every sub-pixel within r of the center.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// RenderRange renders cells [from, to) of one row with their colors.
// Neighbouring cells of the same color share one style run.
func (c *Canvas) RenderRange(row, from, to int) string {
	if row < 0 || row >= c.Height {
		return ""
	}
	from, to = max(from, 0), min(to, c.Width)

	var b strings.Builder
	start := from
	for start < to {
		color := c.Colors[row][start]
		end := start + 1
		for end < to && c.Colors[row][end] == color {
			end++
		}
		run := string(c.Grid[row][start:end])
		if color == "" {
			b.WriteString(run)
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(run))
		}
		start = end
	}
	return b.String()
}

// Render renders the whole canvas with colors, one line per row.
func (c *Canvas) Render() string {
	lines := make([]string, c.Height)
	for i := range lines {
		lines[i] = c.RenderRange(i, 0, c.Width)
	}
	return strings.Join(lines, "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
