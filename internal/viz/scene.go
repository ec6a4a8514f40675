package viz

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
)

const (
	minAlpha  = 0.05
	maxRadius = 3
)

// radius is the projected half size of a quad in dots.
func (p Projector) radius(halfSize, depth float32) int {
	return int(halfSize * p.focal * p.unit / depth)
}

// DrawVertices plots each visible vertex as a dot or a small disc, in slice
// order, and returns how many were drawn. Colors are blended over bg by alpha.
func DrawVertices(c *Canvas, p Projector, verts []render.Vertex, bg RGB) int {
	drawn := 0
	for i := range verts {
		v := &verts[i]
		if v.Color[3] < minAlpha {
			continue
		}
		x, y, depth, ok := p.Project(v.Position)
		if !ok {
			continue
		}
		col := blend(v.Color, bg)
		r := min(p.radius(v.Scale*v.HalfWidth, depth), maxRadius)
		if r <= 0 {
			c.Set(x, y, col)
		} else {
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					if dx*dx+dy*dy <= r*r {
						c.Set(x+dx, y+dy, col)
					}
				}
			}
		}
		drawn++
	}
	return drawn
}

// DrawGrid draws a square grid of the given half size on the y=0 plane.
func DrawGrid(c *Canvas, p Projector, half, step float32, col RGB) {
	line := func(a, b mgl32.Vec3) {
		x0, y0, _, ok0 := p.Project(a)
		x1, y1, _, ok1 := p.Project(b)
		if ok0 && ok1 {
			c.DrawLine(x0, y0, x1, y1, col)
		}
	}
	for s := -half; s <= half; s += step {
		line(mgl32.Vec3{s, 0, -half}, mgl32.Vec3{s, 0, half})
		line(mgl32.Vec3{-half, 0, s}, mgl32.Vec3{half, 0, s})
	}
}

func blend(rgba [4]float32, bg RGB) RGB {
	a := mgl32.Clamp(rgba[3], 0, 1)
	var out RGB
	for i := 0; i < 3; i++ {
		v := mgl32.Clamp(rgba[i], 0, 1)*a*255 + float32(bg[i])*(1-a)
		out[i] = uint8(mgl32.Clamp(v, 0, 255))
	}
	return out
}

// Snapshot draws the current state of effect onto a new w x h canvas as seen
// from cam. The effect must render into batch.
func Snapshot(effect *particles.Effect, batch *render.BufferedBatch, cam *Camera, w, h int, grid bool) *Canvas {
	batch.SetCamera(cam.View())
	batch.Begin()
	effect.Draw()
	batch.End()

	c := NewCanvas(w, h)
	p := cam.Projector(c.DotsWide(), c.DotsHigh())
	if grid {
		DrawGrid(c, p, gridHalf, gridStep, CurrentTheme.Grid)
	}
	DrawVertices(c, p, batch.Vertices, CurrentTheme.Background)
	return c
}
