package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Graph  lipgloss.Color
	// Background is what particle colors fade into as alpha drops.
	Background RGB
	Grid       RGB
}

// Available themes
var (
	ThemeEmber = Theme{
		Name:       "ember",
		Title:      lipgloss.Color("#ffb347"),
		Text:       lipgloss.Color("#f5e6d3"),
		Muted:      lipgloss.Color("#7a6a5a"),
		Border:     lipgloss.Color("#4a3a2a"),
		Graph:      lipgloss.Color("#ff7f50"),
		Background: RGB{0x12, 0x0c, 0x08},
		Grid:       RGB{0x3a, 0x2e, 0x24},
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Title:      lipgloss.Color("#00a8cc"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Border:     lipgloss.Color("#1f3f5f"),
		Graph:      lipgloss.Color("#00ff88"),
		Background: RGB{0x00, 0x1a, 0x33},
		Grid:       RGB{0x1f, 0x3f, 0x5f},
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Title:      lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#888888"),
		Border:     lipgloss.Color("#444444"),
		Graph:      lipgloss.Color("#0088ff"),
		Background: RGB{0, 0, 0},
		Grid:       RGB{0x33, 0x33, 0x33},
	}

	// Default theme
	CurrentTheme = ThemeEmber

	Themes = []Theme{ThemeEmber, ThemeOcean, ThemeMinimal}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
