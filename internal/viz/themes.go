package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Pivot   lipgloss.Color
	Rod     lipgloss.Color
	Bob     lipgloss.Color
	BobFast lipgloss.Color // bob color at MaxSpeed and above
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Panel   lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	// The colors the pendulum page draws with.
	ThemeClassic = Theme{
		Name:    "classic",
		Pivot:   lipgloss.Color("#333333"),
		Rod:     lipgloss.Color("#333333"),
		Bob:     lipgloss.Color("#cccccc"),
		BobFast: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#00ccff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Panel:   lipgloss.Color("#222222"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Pivot:   lipgloss.Color("#00ffff"),
		Rod:     lipgloss.Color("#ff00ff"),
		Bob:     lipgloss.Color("#ffff00"),
		BobFast: lipgloss.Color("#ff0000"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Panel:   lipgloss.Color("#1a001a"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Pivot:   lipgloss.Color("#00cc00"),
		Rod:     lipgloss.Color("#005500"),
		Bob:     lipgloss.Color("#00ff00"),
		BobFast: lipgloss.Color("#88ff88"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Panel:   lipgloss.Color("#001100"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Pivot:   lipgloss.Color("#4488aa"),
		Rod:     lipgloss.Color("#0077be"),
		Bob:     lipgloss.Color("#00a8cc"),
		BobFast: lipgloss.Color("#ffd700"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Panel:   lipgloss.Color("#001a33"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Pivot:   lipgloss.Color("#8b6b8c"),
		Rod:     lipgloss.Color("#feca57"),
		Bob:     lipgloss.Color("#ff6b6b"),
		BobFast: lipgloss.Color("#ff9ff3"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Panel:   lipgloss.Color("#2d1b2e"),
		Warning: lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// BobColor blends from Bob to BobFast as speed approaches maxSpeed.
func (t Theme) BobColor(speed, maxSpeed float64) lipgloss.Color {
	slow, err1 := colorful.Hex(string(t.Bob))
	fast, err2 := colorful.Hex(string(t.BobFast))
	if err1 != nil || err2 != nil || maxSpeed <= 0 {
		return t.Bob
	}
	f := min(max(speed/maxSpeed, 0), 1)
	return lipgloss.Color(slow.BlendLab(fast, f).Clamped().Hex())
}
