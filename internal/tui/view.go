package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/springsim/internal/panel"
	"github.com/san-kum/springsim/internal/viz"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteByte('\n')

	canvas := m.surface.Canvas
	if m.scene == SceneOrbit {
		canvas = m.orbitCanvas
	}
	b.WriteString(m.overlay(canvas))

	if m.scene == ScenePendulum && m.height >= graphMinHeight {
		b.WriteByte('\n')
		b.WriteString(m.energyGraph())
	}
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	running := m.ctrl.Running()
	if m.scene == SceneOrbit {
		running = m.orbitRunning
	}
	state := viz.StatusRunning.Render("● running")
	if !running {
		state = viz.StatusPaused.Render("○ paused")
	}

	title := viz.GradientText("springsim", m.theme.Accent, m.theme.Bob)
	parts := []string{" " + state, title}
	if m.scene == ScenePendulum {
		parts = append(parts, viz.MetricLabel.Render("pointer ")+viz.MetricValue.Render(m.ctrl.Session().Readout()))
	} else {
		parts = append(parts, viz.MetricLabel.Render("tick ")+viz.MetricValue.Render(fmt.Sprint(m.orbit.Tick())))
	}
	parts = append(parts, viz.Subtle.Render(m.theme.Name))
	if m.status != "" {
		parts = append(parts, viz.KeyHint.Render(m.status))
	}
	line := strings.Join(parts, "  ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// overlay renders the canvas with the panel drawn on top of it. A panel
// that does not fit horizontally is left out.
func (m Model) overlay(c *viz.Canvas) string {
	lines := m.panel.Lines()
	pos := m.panel.Position()
	px, py := int(pos.X), int(pos.Y)
	pw := int(m.panel.Width)
	fits := px >= 0 && px+pw <= c.Width

	rows := make([]string, c.Height)
	for row := range rows {
		i := row - py
		if !fits || i < 0 || i >= len(lines) {
			rows[row] = c.RenderRange(row, 0, c.Width)
			continue
		}
		rows[row] = c.RenderRange(row, 0, px) + lines[i] + c.RenderRange(row, px+pw, c.Width)
	}
	return strings.Join(rows, "\n")
}

func (m Model) energyGraph() string {
	if len(m.energy) < 2 {
		return strings.Repeat("\n", graphLines-1) + viz.Subtle.Render(" energy (J/kg): waiting for frames")
	}
	width := max(m.width-12, 10)
	graph := asciigraph.Plot(m.energy,
		asciigraph.Height(graphHeight),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption("energy (J/kg)"))
	return viz.Subtle.Render(graph)
}

func panelStyles(t viz.Theme) panel.Styles {
	return panel.Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Panel),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Background(t.Panel),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Background(t.Panel),
		Value:    lipgloss.NewStyle().Foreground(t.Text).Background(t.Panel),
		Body:     lipgloss.NewStyle().Foreground(t.Muted).Background(t.Panel),
	}
}

func round(v float64) int { return int(math.Round(v)) }
