package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/vmath"
)

// Camera orbits Target at Distance. Yaw and Pitch are in degrees.
type Camera struct {
	Target     mgl32.Vec3
	Distance   float32
	Yaw, Pitch float32
	FOV        float32
}

// NewCamera places an orbit camera at eye looking at target.
func NewCamera(eye, target mgl32.Vec3, fov float32) *Camera {
	d := eye.Sub(target)
	dist := d.Len()
	c := &Camera{Target: target, Distance: dist, FOV: fov}
	if dist > 0 {
		c.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(d.Y() / dist))))
		c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(d.X()), float64(d.Z()))))
	}
	if c.FOV <= 0 {
		c.FOV = 60
	}
	return c
}

func (c *Camera) Eye() mgl32.Vec3 {
	cp := vmath.CosDeg(c.Pitch)
	return c.Target.Add(mgl32.Vec3{
		c.Distance * cp * vmath.SinDeg(c.Yaw),
		c.Distance * vmath.SinDeg(c.Pitch),
		c.Distance * cp * vmath.CosDeg(c.Yaw),
	})
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, vmath.UnitY)
}

func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -85, 85)
}

func (c *Camera) ZoomIn()  { c.Distance = max(1, c.Distance/1.2) }
func (c *Camera) ZoomOut() { c.Distance = min(1000, c.Distance*1.2) }

// Projector maps world points to dot coordinates for one frame.
type Projector struct {
	view         mgl32.Mat4
	focal        float32
	cx, cy, unit float32
}

func (c *Camera) Projector(dotsWide, dotsHigh int) Projector {
	return Projector{
		view:  c.View(),
		focal: float32(1 / math.Tan(float64(mgl32.DegToRad(c.FOV)/2))),
		cx:    float32(dotsWide) / 2,
		cy:    float32(dotsHigh) / 2,
		unit:  float32(min(dotsWide, dotsHigh)) / 2,
	}
}

// Project returns the dot position and view depth of p. ok is false for
// points behind the near plane.
func (p Projector) Project(v mgl32.Vec3) (x, y int, depth float32, ok bool) {
	e := vmath.Transform(p.view, v)
	depth = -e.Z()
	if depth < 0.1 {
		return 0, 0, depth, false
	}
	s := p.focal * p.unit / depth
	return int(p.cx + e.X()*s), int(p.cy - e.Y()*s), depth, true
}
