package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/values"
)

// frameWith returns a frame whose single controller holds particles at the
// given positions.
func frameWith(t *testing.T, positions ...[3]float32) sim.Frame {
	t.Helper()
	e := particles.NewRegularEmitter()
	e.MaxParticles = 8
	e.Life.SetLow(1000)
	e.Life.SetHigh(1000)
	c := particles.NewController("m", e, nil,
		particles.NewSpawnInfluencer(&values.Point{Primitive: values.NewPrimitive()}))
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	c.Start()
	n := len(positions)
	c.ActivateParticles(0, n)
	if err := c.Particles.Extend(n); err != nil {
		t.Fatal(err)
	}
	pos := channels.Get(c.Particles, channels.Position)
	for i, p := range positions {
		copy(pos.Row(i), p[:])
	}
	return sim.Frame{Effect: particles.NewEffect("m", c)}
}

func TestPopulationMetrics(t *testing.T) {
	mean, peak := NewAliveMean(), NewPeakAlive()

	for _, n := range []int{1, 3, 2} {
		f := frameWith(t, make([][3]float32, n)...)
		mean.Observe(f)
		peak.Observe(f)
	}

	if mean.Value() != 2 {
		t.Errorf("expected mean 2, got %v", mean.Value())
	}
	if peak.Value() != 3 {
		t.Errorf("expected peak 3, got %v", peak.Value())
	}

	mean.Reset()
	peak.Reset()
	if mean.Value() != 0 || peak.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestLifePercentFreshParticles(t *testing.T) {
	m := NewLifePercent()
	m.Observe(frameWith(t, [3]float32{}, [3]float32{}))

	if m.Value() != 0 {
		t.Errorf("fresh particles should be at 0%% life, got %v", m.Value())
	}
}

func TestSpread(t *testing.T) {
	tests := []struct {
		name      string
		positions [][3]float32
		want      float64
	}{
		{"single point", [][3]float32{{5, 5, 5}}, 0},
		{"pair on x", [][3]float32{{-1, 0, 0}, {1, 0, 0}}, 1},
		{"square", [][3]float32{{3, 0, 0}, {-3, 0, 0}, {0, 4, 0}, {0, -4, 0}}, math.Sqrt(12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSpread()
			m.Observe(frameWith(t, tt.positions...))
			if math.Abs(m.Value()-tt.want) > 1e-6 {
				t.Errorf("spread = %v, want %v", m.Value(), tt.want)
			}
		})
	}
}

func TestSpreadKeepsMaximum(t *testing.T) {
	m := NewSpread()
	m.Observe(frameWith(t, [3]float32{-2, 0, 0}, [3]float32{2, 0, 0}))
	m.Observe(frameWith(t, [3]float32{0, 0, 0}))
	if m.Value() != 2 {
		t.Errorf("expected spread 2, got %v", m.Value())
	}
}

func TestDefaultNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
}
