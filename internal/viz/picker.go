package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dim         = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Picker is a menu of effect names. Selected is empty when the user quits
// without choosing.
type Picker struct {
	names    []string
	info     map[string]string
	cursor   int
	Selected string
}

// NewPicker lists names; info optionally maps a name to a one-line summary.
func NewPicker(names []string, info map[string]string) Picker {
	return Picker{names: names, info: info}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) > 0 {
			p.Selected = p.names[p.cursor]
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	var s strings.Builder
	s.WriteString(titleStyle().Render("PARTICLE EFFECTS") + "\n")
	for i, name := range p.names {
		line := name
		if desc := p.info[name]; desc != "" {
			line += "  " + dim.Render(desc)
		}
		if i == p.cursor {
			s.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString(helpStyle().Render("↑↓:Move Enter:Open Q:Quit"))
	return s.String()
}
