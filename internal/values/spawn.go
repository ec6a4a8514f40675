package values

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/vmath"
)

// SpawnShape produces local-space spawn points. Start is called when a run starts
// so per-run dimensions can be sampled; Spawn is called once per activated particle
// with the emitter's completion percent.
type SpawnShape interface {
	Start(rng *rand.Rand)
	Spawn(rng *rand.Rand, percent float32) mgl32.Vec3
	Copy() SpawnShape
}

// Offsets is the optional per-axis jitter shared by every shape.
type Offsets struct {
	X Ranged `yaml:"x_offset"`
	Y Ranged `yaml:"y_offset"`
	Z Ranged `yaml:"z_offset"`
}

func (o *Offsets) apply(rng *rand.Rand, v mgl32.Vec3) mgl32.Vec3 {
	if o.X.Active {
		v[0] += o.X.NewLowValue(rng)
	}
	if o.Y.Active {
		v[1] += o.Y.NewLowValue(rng)
	}
	if o.Z.Active {
		v[2] += o.Z.NewLowValue(rng)
	}
	return v
}

// Primitive carries the width/height/depth values of the simple shapes.
type Primitive struct {
	Offsets `yaml:",inline"`
	Width   Scaled `yaml:"width"`
	Height  Scaled `yaml:"height"`
	Depth   Scaled `yaml:"depth"`
	Edges   bool   `yaml:"edges"`

	width, widthDiff   float32
	height, heightDiff float32
	depth, depthDiff   float32
}

func NewPrimitive() Primitive {
	return Primitive{Width: NewScaled(), Height: NewScaled(), Depth: NewScaled()}
}

func (p *Primitive) Start(rng *rand.Rand) {
	p.width, p.widthDiff = p.Width.StartDiff(rng)
	p.height, p.heightDiff = p.Height.StartDiff(rng)
	p.depth, p.depthDiff = p.Depth.StartDiff(rng)
}

func (p *Primitive) dims(percent float32) (w, h, d float32) {
	w = p.width + p.widthDiff*p.Width.Scale(percent)
	h = p.height + p.heightDiff*p.Height.Scale(percent)
	d = p.depth + p.depthDiff*p.Depth.Scale(percent)
	return w, h, d
}

func (p Primitive) clone() Primitive {
	p.Width = p.Width.Clone()
	p.Height = p.Height.Clone()
	p.Depth = p.Depth.Clone()
	return p
}

// Point spawns at a single point whose coordinates are the primitive dimensions.
type Point struct {
	Primitive `yaml:",inline"`
}

func NewPoint() *Point { return &Point{Primitive: NewPrimitive()} }

func (s *Point) Spawn(rng *rand.Rand, percent float32) mgl32.Vec3 {
	w, h, d := s.dims(percent)
	return s.apply(rng, mgl32.Vec3{w, h, d})
}

func (s *Point) Copy() SpawnShape { return &Point{Primitive: s.clone()} }

// Line spawns uniformly along the segment from the origin to (width, height, depth).
type Line struct {
	Primitive `yaml:",inline"`
}

func NewLine() *Line { return &Line{Primitive: NewPrimitive()} }

func (s *Line) Spawn(rng *rand.Rand, percent float32) mgl32.Vec3 {
	w, h, d := s.dims(percent)
	a := rng.Float32()
	return s.apply(rng, mgl32.Vec3{a * w, a * h, a * d})
}

func (s *Line) Copy() SpawnShape { return &Line{Primitive: s.clone()} }

// Rectangle spawns inside a centered box, or on its faces when Edges is set.
type Rectangle struct {
	Primitive `yaml:",inline"`
}

func NewRectangle() *Rectangle { return &Rectangle{Primitive: NewPrimitive()} }

func (s *Rectangle) Spawn(rng *rand.Rand, percent float32) mgl32.Vec3 {
	w, h, d := s.dims(percent)
	v := mgl32.Vec3{rng.Float32()*w - w/2, rng.Float32()*h - h/2, rng.Float32()*d - d/2}
	if s.Edges {
		side := float32(-0.5)
		if rng.IntN(2) == 1 {
			side = 0.5
		}
		switch rng.IntN(3) {
		case 0:
			v[0] = side * w
		case 1:
			v[1] = side * h
		default:
			v[2] = side * d
		}
	}
	return s.apply(rng, v)
}

func (s *Rectangle) Copy() SpawnShape { return &Rectangle{Primitive: s.clone()} }

// Side restricts an ellipse to one half.
type Side string

const (
	SideBoth   Side = "both"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Ellipse spawns inside a centered ellipsoid, or on its surface when Edges is set.
// A zero dimension flattens it to an ellipse in the remaining plane.
type Ellipse struct {
	Primitive `yaml:",inline"`
	Side      Side `yaml:"side"`
}

func NewEllipse() *Ellipse { return &Ellipse{Primitive: NewPrimitive(), Side: SideBoth} }

func (s *Ellipse) Spawn(rng *rand.Rand, percent float32) mgl32.Vec3 {
	w, h, d := s.dims(percent)

	minT, maxT := float32(0), 2*vmath.Pi
	switch s.Side {
	case SideTop:
		maxT = vmath.Pi
	case SideBottom:
		maxT = -vmath.Pi
	}
	t := minT + (maxT-minT)*rng.Float32()

	var rx, ry, rz float32
	if s.Edges {
		switch {
		case w == 0:
			return s.apply(rng, mgl32.Vec3{0, h / 2 * vmath.Sin(t), d / 2 * vmath.Cos(t)})
		case h == 0:
			return s.apply(rng, mgl32.Vec3{w / 2 * vmath.Cos(t), 0, d / 2 * vmath.Sin(t)})
		case d == 0:
			return s.apply(rng, mgl32.Vec3{w / 2 * vmath.Cos(t), h / 2 * vmath.Sin(t), 0})
		}
		rx, ry, rz = w/2, h/2, d/2
	} else {
		rx = rng.Float32() * w / 2
		ry = rng.Float32() * h / 2
		rz = rng.Float32() * d / 2
	}

	z := rng.Float32()*2 - 1
	r := vmath.Sqrt(1 - z*z)
	return s.apply(rng, mgl32.Vec3{rx * r * vmath.Cos(t), ry * r * vmath.Sin(t), rz * z})
}

func (s *Ellipse) Copy() SpawnShape { return &Ellipse{Primitive: s.clone(), Side: s.Side} }

// Cylinder spawns inside a Y-aligned cylinder, or on its side wall when Edges is set.
type Cylinder struct {
	Primitive `yaml:",inline"`
}

func NewCylinder() *Cylinder { return &Cylinder{Primitive: NewPrimitive()} }

func (s *Cylinder) Spawn(rng *rand.Rand, percent float32) mgl32.Vec3 {
	w, h, d := s.dims(percent)

	y := rng.Float32()*h - h/2
	rx, rz := w/2, d/2
	if !s.Edges {
		rx = rng.Float32() * w / 2
		rz = rng.Float32() * d / 2
	}

	var theta float32
	switch {
	case rx != 0 && rz != 0:
		theta = rng.Float32() * 360
	case rx == 0:
		theta = 90
		if rng.IntN(2) == 0 {
			theta = -90
		}
	default:
		theta = 0
		if rng.IntN(2) == 0 {
			theta = 180
		}
	}
	return s.apply(rng, mgl32.Vec3{rx * vmath.CosDeg(theta), y, rz * vmath.SinDeg(theta)})
}

func (s *Cylinder) Copy() SpawnShape { return &Cylinder{Primitive: s.clone()} }
