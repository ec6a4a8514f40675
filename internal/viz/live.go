package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/sorter"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	gridHalf        = 20
	gridStep        = 5
)

type TickMsg time.Time

// Options configures a live view.
type Options struct {
	Dt     float64
	FPS    int
	Camera *Camera
	// RecordPath is where the G key writes its GIF.
	RecordPath string
	Logger     *log.Logger
}

// Model steps a particle effect and draws its batch output on a braille canvas.
type Model struct {
	effect  *particles.Effect
	system  *particles.System
	batch   *render.BufferedBatch
	sorters [2]sorter.Sorter
	sorted  bool

	camera        *Camera
	canvas        *Canvas
	width, height int
	dt            float64
	fps           int
	t             float64
	drawn         int
	running       bool
	showGrid      bool
	showHelp      bool
	history       []float64

	recording  bool
	recordPath string
	frames     []*image.Paletted
	logger     *log.Logger
}

// NewModel registers effect and batch with a fresh particle system. The effect
// must be built with batch as its render target and initialized.
func NewModel(effect *particles.Effect, batch *render.BufferedBatch, opts Options) (Model, error) {
	sys := particles.NewSystem()
	sys.AddBatch(batch)
	if err := sys.Add(effect); err != nil {
		return Model{}, err
	}
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 60
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Camera == nil {
		opts.Camera = &Camera{Distance: 60, Pitch: 15, FOV: 60}
	}
	if opts.RecordPath == "" {
		opts.RecordPath = "particles.gif"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := Model{
		effect:     effect,
		system:     sys,
		batch:      batch,
		sorters:    [2]sorter.Sorter{sorter.NewNone(), sorter.NewDistance()},
		camera:     opts.Camera,
		canvas:     NewCanvas(width, height),
		width:      width,
		height:     height,
		dt:         opts.Dt,
		fps:        opts.FPS,
		running:    true,
		showGrid:   true,
		history:    make([]float64, 0, historyCapacity),
		recordPath: opts.RecordPath,
		logger:     opts.Logger,
	}
	_, m.sorted = batch.Sorter.(*sorter.Distance)
	effect.Start()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			m.toggleSorter()
		case "left", "h":
			m.camera.Orbit(-10, 0)
		case "right", "l":
			m.camera.Orbit(10, 0)
		case "up", "k":
			m.camera.Orbit(0, 5)
		case "down", "j":
			m.camera.Orbit(0, -5)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			m.showGrid = !m.showGrid
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the effect by one frame worth of fixed steps.
func (m *Model) step() {
	frame := 1 / float64(m.fps)
	for elapsed := 0.0; elapsed < frame; elapsed += m.dt {
		m.system.Update(float32(m.dt))
		m.t += m.dt
	}
	// Finished bursts start over so the view never goes empty.
	if m.effect.IsComplete() {
		m.effect.Start()
	}

	m.history = append(m.history, float64(m.effect.Alive()))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) reset() {
	m.effect.Reset()
	m.t = 0
	m.history = m.history[:0]
}

func (m *Model) toggleSorter() {
	m.sorted = !m.sorted
	if m.sorted {
		m.batch.Sorter = m.sorters[1]
	} else {
		m.batch.Sorter = m.sorters[0]
	}
}

// draw runs the particle system's draw pass and plots the batch output.
func (m *Model) draw() {
	m.batch.SetCamera(m.camera.View())
	m.system.Draw()

	m.canvas.Clear()
	p := m.camera.Projector(m.canvas.DotsWide(), m.canvas.DotsHigh())
	if m.showGrid {
		DrawGrid(m.canvas, p, gridHalf, gridStep, CurrentTheme.Grid)
	}
	m.drawn = DrawVertices(m.canvas, p, m.batch.Vertices, CurrentTheme.Background)
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(titleStyle().Render(strings.ToUpper(m.effect.Name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recording {
		status += " ● REC"
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Alive"))
		s.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	s.WriteString(row("Time", fmt.Sprintf("%.2fs", m.t)))
	s.WriteString(row("Alive", fmt.Sprintf("%d", m.effect.Alive())))
	s.WriteString(row("Drawn", fmt.Sprintf("%d", m.drawn)))
	sortName := "none"
	if m.sorted {
		sortName = "distance"
	}
	s.WriteString(row("Sorter", sortName))
	s.WriteString(row("Camera", fmt.Sprintf("yaw %.0f pitch %.0f d %.0f", m.camera.Yaw, m.camera.Pitch, m.camera.Distance)))

	s.WriteString("\nCONTROLLERS\n")
	for _, c := range m.effect.Controllers {
		n := 0
		if c.Particles != nil {
			n = c.Particles.Size()
		}
		line := fmt.Sprintf("%-10s %4d", c.Name, n)
		if e, ok := c.Emitter.(*particles.RegularEmitter); ok {
			line += " " + ProgressBar(float64(e.Percent()), 10)
		}
		s.WriteString("  " + labelStyle().UnsetWidth().Render(line) + "\n")
	}
	s.WriteString(helpStyle().Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nS:Sorter F:Grid T:Theme\nG:Record ?:Help"))

	statsView := panelStyle().Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart the effect       ║
║  Q        - Quit                     ║
║  ←→ / HL  - Orbit camera             ║
║  ↑↓ / KJ  - Tilt camera              ║
║  + / -    - Zoom                     ║
║  S        - Toggle depth sorting     ║
║  F        - Toggle floor grid        ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
