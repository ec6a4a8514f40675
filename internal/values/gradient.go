package values

import "fmt"

// Gradient is an RGB color timeline. Colors holds three floats per key.
type Gradient struct {
	Colors   []float32 `yaml:"colors"`
	Timeline []float32 `yaml:"timeline"`
}

func NewGradient() Gradient {
	return Gradient{Colors: []float32{1, 1, 1}, Timeline: []float32{0}}
}

// Validate reports ErrInvalidCurve unless the gradient has at least one key,
// three colors per key and a timeline that never decreases.
func (g *Gradient) Validate() error {
	if len(g.Timeline) == 0 {
		return fmt.Errorf("%w: gradient has no keys", ErrInvalidCurve)
	}
	if len(g.Colors) != 3*len(g.Timeline) {
		return fmt.Errorf("%w: %d color values for %d timeline keys", ErrInvalidCurve, len(g.Colors), len(g.Timeline))
	}
	return checkTimeline(g.Timeline)
}

// ColorAt writes the interpolated RGB at t into out[off:off+3].
func (g *Gradient) ColorAt(t float32, out []float32, off int) {
	n := len(g.Timeline)
	start, end := 0, -1
	for i := 1; i < n; i++ {
		if g.Timeline[i] > t {
			end = i
			break
		}
		start = i
	}
	t0 := g.Timeline[start]
	r1, g1, b1 := g.Colors[start*3], g.Colors[start*3+1], g.Colors[start*3+2]
	if end == -1 {
		out[off], out[off+1], out[off+2] = r1, g1, b1
		return
	}
	f := (t - t0) / (g.Timeline[end] - t0)
	e := end * 3
	out[off] = r1 + (g.Colors[e]-r1)*f
	out[off+1] = g1 + (g.Colors[e+1]-g1)*f
	out[off+2] = b1 + (g.Colors[e+2]-b1)*f
}

// Clone returns a deep copy.
func (g Gradient) Clone() Gradient {
	g.Colors = append([]float32(nil), g.Colors...)
	g.Timeline = append([]float32(nil), g.Timeline...)
	return g
}
