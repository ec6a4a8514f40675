package sim

import (
	"math"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/particles"
)

// Frame is the view metrics and observers get after each step.
type Frame struct {
	Step   int
	Time   float64
	Effect *particles.Effect
}

// Alive is the live particle count summed over the effect's controllers.
func (f Frame) Alive() int { return f.Effect.Alive() }

// Counts returns the live particle count of each controller.
func (f Frame) Counts() []int {
	out := make([]int, len(f.Effect.Controllers))
	for i, c := range f.Effect.Controllers {
		if c.Particles != nil {
			out[i] = c.Particles.Size()
		}
	}
	return out
}

// Valid reports whether every live position is finite.
func (f Frame) Valid() bool {
	for _, c := range f.Effect.Controllers {
		if c.Particles == nil {
			continue
		}
		pos := channels.Get(c.Particles, channels.Position)
		if pos == nil {
			continue
		}
		for _, v := range pos.Data[:c.Particles.Size()*pos.Stride] {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return false
			}
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     uint64
	// ValidateState stops the run at the first non-finite position.
	ValidateState bool
	// StopWhenComplete ends the run early once the effect reports completion.
	StopWhenComplete bool
}

type Result struct {
	Controllers []string
	Times       []float64
	// Counts holds the per-controller live count for each entry of Times.
	Counts     [][]int
	Metrics    map[string]float64
	StepsTaken int
	Completed  bool
	Errors     []error
}

// Alive returns the total live count of frame i.
func (r *Result) Alive(i int) int {
	n := 0
	for _, c := range r.Counts[i] {
		n += c
	}
	return n
}

// AliveSeries returns the total live count of every frame.
func (r *Result) AliveSeries() []float64 {
	out := make([]float64, len(r.Counts))
	for i := range r.Counts {
		out[i] = float64(r.Alive(i))
	}
	return out
}
