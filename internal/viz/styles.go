package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Status indicators
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// GradientText colors each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err1 := colorful.Hex(string(start))
	to, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}
	return result.String()
}

// Separator is a muted rule width cells wide.
func Separator(width int) string {
	if width < 7 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
