package values

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newRand() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func TestScaledScale(t *testing.T) {
	s := NewScaled()
	s.Scaling = []float32{0, 1, 0.5}
	s.Timeline = []float32{0, 0.5, 1}

	tests := []struct {
		t    float32
		want float32
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{0.75, 0.75},
		{1, 0.5},
		{2, 0.5},
	}
	for _, tt := range tests {
		if got := s.Scale(tt.t); mgl32.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Scale(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestScaledDefaultIsConstant(t *testing.T) {
	s := NewScaled()
	for _, p := range []float32{0, 0.3, 1} {
		if got := s.Scale(p); got != 1 {
			t.Errorf("Scale(%v) = %v, want 1", p, got)
		}
	}
}

func TestStartDiff(t *testing.T) {
	rng := newRand()
	s := NewScaled()
	s.SetLow(2)
	s.SetHigh(5)

	start, diff := s.StartDiff(rng)
	if start != 2 || diff != 3 {
		t.Errorf("absolute: start=%v diff=%v, want 2, 3", start, diff)
	}

	s.Relative = true
	start, diff = s.StartDiff(rng)
	if start != 2 || diff != 5 {
		t.Errorf("relative: start=%v diff=%v, want 2, 5", start, diff)
	}
}

func TestRangedBounds(t *testing.T) {
	rng := newRand()
	r := NewRanged(-1, 3)
	for i := 0; i < 1000; i++ {
		v := r.NewLowValue(rng)
		if v < -1 || v > 3 {
			t.Fatalf("sample %v outside [-1, 3]", v)
		}
	}
}

func TestGradientColorAt(t *testing.T) {
	g := Gradient{
		Colors:   []float32{1, 0, 0, 0, 0, 1},
		Timeline: []float32{0, 1},
	}
	out := make([]float32, 4)

	g.ColorAt(0.5, out, 1)
	if out[1] != 0.5 || out[2] != 0 || out[3] != 0.5 {
		t.Errorf("ColorAt(0.5) = %v", out[1:])
	}

	g.ColorAt(1.5, out, 0)
	if out[0] != 0 || out[1] != 0 || out[2] != 1 {
		t.Errorf("past end = %v, want last key", out[:3])
	}

	single := NewGradient()
	single.ColorAt(0.7, out, 0)
	if out[0] != 1 || out[1] != 1 || out[2] != 1 {
		t.Errorf("single-key gradient = %v, want white", out[:3])
	}
}

func TestCurveValidate(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"default scaled", (&Scaled{}).Validate()},
		{"new scaled", func() error { s := NewScaled(); return s.Validate() }()},
		{"new gradient", func() error { g := NewGradient(); return g.Validate() }()},
		{"flat timeline", (&Scaled{Scaling: []float32{1, 2}, Timeline: []float32{0.5, 0.5}}).Validate()},
	}
	for _, tt := range tests {
		if tt.err != nil {
			t.Errorf("%s: %v", tt.name, tt.err)
		}
	}

	bad := []struct {
		name string
		err  error
	}{
		{"length mismatch", (&Scaled{Scaling: []float32{1}, Timeline: []float32{0, 1}}).Validate()},
		{"decreasing", (&Scaled{Scaling: []float32{1, 2, 3}, Timeline: []float32{0, 1, 0.5}}).Validate()},
		{"empty gradient", (&Gradient{}).Validate()},
		{"short colors", (&Gradient{Colors: []float32{1, 1, 1, 0}, Timeline: []float32{0, 1}}).Validate()},
		{"gradient decreasing", (&Gradient{Colors: make([]float32, 6), Timeline: []float32{1, 0}}).Validate()},
	}
	for _, tt := range bad {
		if !errors.Is(tt.err, ErrInvalidCurve) {
			t.Errorf("%s: err = %v, want ErrInvalidCurve", tt.name, tt.err)
		}
	}
}

func TestPointSpawn(t *testing.T) {
	rng := newRand()
	p := NewPoint()
	p.Width.SetLow(1)
	p.Height.SetLow(2)
	p.Depth.SetLow(3)
	p.Start(rng)

	got := p.Spawn(rng, 0)
	if got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Spawn = %v, want (1,2,3)", got)
	}
}

func TestShapesStayInBounds(t *testing.T) {
	rng := newRand()
	sized := func(p *Primitive) {
		p.Width.SetLow(4)
		p.Height.SetLow(2)
		p.Depth.SetLow(6)
	}

	rect := NewRectangle()
	sized(&rect.Primitive)
	ell := NewEllipse()
	sized(&ell.Primitive)
	cyl := NewCylinder()
	sized(&cyl.Primitive)
	line := NewLine()
	sized(&line.Primitive)

	shapes := map[string]SpawnShape{"rectangle": rect, "ellipse": ell, "cylinder": cyl}
	for name, s := range shapes {
		t.Run(name, func(t *testing.T) {
			s.Start(rng)
			for i := 0; i < 500; i++ {
				v := s.Spawn(rng, 0)
				if mgl32.Abs(v.X()) > 2+1e-4 || mgl32.Abs(v.Y()) > 1+1e-4 || mgl32.Abs(v.Z()) > 3+1e-4 {
					t.Fatalf("%s spawned %v outside half extents (2,1,3)", name, v)
				}
			}
		})
	}

	line.Start(rng)
	for i := 0; i < 200; i++ {
		v := line.Spawn(rng, 0)
		if v.X() < 0 || v.X() > 4 || mgl32.Abs(v.Y()*2-v.X()) > 1e-4 {
			t.Fatalf("line spawned %v off the segment", v)
		}
	}
}

func TestEllipseEdgesOnSurface(t *testing.T) {
	rng := newRand()
	e := NewEllipse()
	e.Edges = true
	e.Width.SetLow(2)
	e.Height.SetLow(2)
	e.Depth.SetLow(2)
	e.Start(rng)
	for i := 0; i < 200; i++ {
		v := e.Spawn(rng, 0)
		if l := v.Len(); mgl32.Abs(l-1) > 1e-4 {
			t.Fatalf("surface point %v has radius %v", v, l)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	p := NewRectangle()
	p.Width.Scaling = []float32{1, 2}
	p.Width.Timeline = []float32{0, 1}

	c := p.Copy().(*Rectangle)
	c.Width.Scaling[0] = 9
	if p.Width.Scaling[0] != 1 {
		t.Error("copy shares scaling storage")
	}
}

func TestRegionHalfInvAspect(t *testing.T) {
	r := Region{Width: 4, Height: 2}
	if got := r.HalfInvAspect(); got != 0.25 {
		t.Errorf("HalfInvAspect = %v, want 0.25", got)
	}
}
