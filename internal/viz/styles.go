package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles derived from the current theme.
func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Title).MarginBottom(1)
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(44)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(12)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func graphStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Graph).Padding(1, 0)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).MarginTop(1)
}

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

// ProgressBar renders a bar filled to percent.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Graph).Render(bar)
}

func row(label, value string) string {
	return labelStyle().Render(label) + valueStyle().Render(value) + "\n"
}
