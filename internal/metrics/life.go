package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/sim"
)

// LifePercent averages the life percent of every live particle over every
// observed frame. Controllers without a life channel are skipped.
type LifePercent struct {
	name    string
	sum     float64
	samples int
}

func NewLifePercent() *LifePercent {
	return &LifePercent{name: "life_percent"}
}

func (l *LifePercent) Name() string { return l.name }

func (l *LifePercent) Observe(f sim.Frame) {
	for _, c := range f.Effect.Controllers {
		if c.Particles == nil {
			continue
		}
		life := channels.Get(c.Particles, channels.Life)
		if life == nil {
			continue
		}
		for i := 0; i < c.Particles.Size(); i++ {
			l.sum += float64(life.Row(i)[channels.LifePercentOffset])
			l.samples++
		}
	}
}

func (l *LifePercent) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *LifePercent) Reset() {
	l.sum = 0
	l.samples = 0
}

// Spread tracks the largest RMS distance of live positions from their centroid.
type Spread struct {
	name   string
	spread float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(f sim.Frame) {
	var cx, cy, cz float64
	n := 0
	each := func(fn func(x, y, z float64)) {
		for _, c := range f.Effect.Controllers {
			if c.Particles == nil {
				continue
			}
			pos := channels.Get(c.Particles, channels.Position)
			if pos == nil {
				continue
			}
			for i := 0; i < c.Particles.Size(); i++ {
				p := pos.Row(i)
				fn(float64(p[0]), float64(p[1]), float64(p[2]))
			}
		}
	}
	each(func(x, y, z float64) {
		cx, cy, cz = cx+x, cy+y, cz+z
		n++
	})
	if n == 0 {
		return
	}
	cx, cy, cz = cx/float64(n), cy/float64(n), cz/float64(n)

	var sq float64
	each(func(x, y, z float64) {
		dx, dy, dz := x-cx, y-cy, z-cz
		sq += dx*dx + dy*dy + dz*dz
	})
	s.spread = math.Max(s.spread, math.Sqrt(sq/float64(n)))
}

func (s *Spread) Value() float64 { return s.spread }
func (s *Spread) Reset()         { s.spread = 0 }

// Default returns a fresh instance of every particle metric.
func Default() []sim.Metric {
	return []sim.Metric{NewAliveMean(), NewPeakAlive(), NewLifePercent(), NewSpread()}
}
