package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/sorter"
	"github.com/san-kum/partsim/internal/values"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, RGB{255, 0, 0})
	c.Set(1, 3, RGB{0, 255, 0})
	c.Set(-1, 0, RGB{})
	c.Set(4, 0, RGB{})

	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("cell = %U", got)
	}
	if c.Colors[0][0] != (RGB{0, 255, 0}) {
		t.Errorf("last dot should set the cell color, got %v", c.Colors[0][0])
	}
	if c.Lit() != 1 {
		t.Errorf("expected 1 lit cell, got %d", c.Lit())
	}

	c.Clear()
	if c.Lit() != 0 || strings.TrimSpace(c.String()) != "⠀⠀" {
		t.Errorf("canvas not cleared: %q", c.String())
	}
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{10, 5, 30}, mgl32.Vec3{0, 5, 0}, 60)
	p := cam.Projector(160, 96)

	x, y, depth, ok := p.Project(cam.Target)
	if !ok || absInt(x-80) > 1 || absInt(y-48) > 1 {
		t.Errorf("target projected to (%d, %d) ok=%v", x, y, ok)
	}
	if mgl32.Abs(depth-cam.Distance) > 1e-3 {
		t.Errorf("depth %v, want %v", depth, cam.Distance)
	}
	if eye := cam.Eye(); !eye.ApproxEqualThreshold(mgl32.Vec3{10, 5, 30}, 1e-3) {
		t.Errorf("eye = %+v", eye)
	}

	if _, _, _, ok := p.Project(cam.Eye().Add(cam.Eye().Sub(cam.Target))); ok {
		t.Error("a point behind the camera should not project")
	}
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	cam := &Camera{Distance: 10, FOV: 60}
	cam.Orbit(0, 200)
	if cam.Pitch != 85 {
		t.Errorf("pitch = %v", cam.Pitch)
	}
	cam.ZoomIn()
	if cam.Distance >= 10 {
		t.Errorf("zoom in should shorten distance, got %v", cam.Distance)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		rgba [4]float32
		bg   RGB
		want RGB
	}{
		{[4]float32{1, 0, 0, 1}, RGB{0, 0, 255}, RGB{255, 0, 0}},
		{[4]float32{1, 1, 1, 0}, RGB{10, 20, 30}, RGB{10, 20, 30}},
		{[4]float32{2, -1, 0, 1}, RGB{}, RGB{255, 0, 0}},
	}
	for _, tt := range tests {
		if got := blend(tt.rgba, tt.bg); got != tt.want {
			t.Errorf("blend(%v, %v) = %v, want %v", tt.rgba, tt.bg, got, tt.want)
		}
	}
}

func TestDrawVerticesLastWins(t *testing.T) {
	cam := &Camera{Distance: 50, FOV: 60}
	c := NewCanvas(40, 20)
	p := cam.Projector(c.DotsWide(), c.DotsHigh())

	verts := []render.Vertex{
		{Color: [4]float32{1, 0, 0, 1}, Scale: 0},
		{Color: [4]float32{0, 0, 1, 1}, Scale: 0},
		{Color: [4]float32{0, 1, 0, 0}, Scale: 0},
	}
	if n := DrawVertices(c, p, verts, RGB{}); n != 2 {
		t.Errorf("expected 2 drawn, got %d", n)
	}
	if got := c.Colors[10][20]; got != (RGB{0, 0, 255}) {
		t.Errorf("center color = %v", got)
	}
}

func liveEffect(t *testing.T, batch *render.BufferedBatch) *particles.Effect {
	t.Helper()
	e := particles.NewRegularEmitter()
	e.MaxParticles = 30
	e.Emission.SetLow(200)
	e.Emission.SetHigh(200)
	e.Life.SetLow(500)
	e.Life.SetHigh(500)
	c := particles.NewController("jet", e, render.NewBatchRenderer(batch),
		particles.NewSpawnInfluencer(&values.Point{Primitive: values.NewPrimitive()}))
	effect := particles.NewEffect("jet", c)
	if err := effect.Init(); err != nil {
		t.Fatal(err)
	}
	return effect
}

func TestModelSteps(t *testing.T) {
	batch := render.NewBufferedBatch(sorter.NewDistance())
	m, err := NewModel(liveEffect(t, batch), batch, Options{Dt: 0.01, FPS: 10})
	if err != nil {
		t.Fatal(err)
	}

	var tm tea.Model = m
	for i := 0; i < 5; i++ {
		tm, _ = tm.Update(TickMsg{})
	}
	got := tm.(Model)
	if got.effect.Alive() == 0 {
		t.Fatal("expected live particles after half a second")
	}
	if batch.Len() != got.effect.Alive() {
		t.Errorf("batch holds %d vertices for %d particles", batch.Len(), got.effect.Alive())
	}
	if len(got.history) != 5 {
		t.Errorf("expected 5 history samples, got %d", len(got.history))
	}
	if !strings.Contains(got.View(), "JET") {
		t.Error("view should show the effect name")
	}

	tm, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	paused := tm.(Model)
	before := paused.t
	tm, _ = paused.Update(TickMsg{})
	if tm.(Model).t != before {
		t.Error("a paused model should not advance")
	}
}

func TestModelRejectsUninitializedEffect(t *testing.T) {
	batch := render.NewBufferedBatch(nil)
	c := particles.NewController("idle", particles.NewRegularEmitter(), render.NewBatchRenderer(batch))
	effect := particles.NewEffect("idle", c)
	if _, err := NewModel(effect, batch, Options{}); err == nil {
		t.Error("expected an error for an uninitialized effect")
	}
}

func TestPickerSelects(t *testing.T) {
	var tm tea.Model = NewPicker([]string{"fountain", "smoke"}, nil)
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := tm.(Picker).Selected; got != "smoke" {
		t.Errorf("selected %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	batch := render.NewBufferedBatch(sorter.NewNone())
	effect := liveEffect(t, batch)
	effect.Start()
	for i := 0; i < 10; i++ {
		effect.Update(0.02)
	}

	cam := &Camera{Distance: 20, FOV: 60}
	c := Snapshot(effect, batch, cam, 40, 20, false)
	if batch.Len() != effect.Alive() {
		t.Errorf("batch holds %d vertices for %d particles", batch.Len(), effect.Alive())
	}
	if c.Lit() == 0 {
		t.Error("expected particles at the origin to light the canvas")
	}
}
