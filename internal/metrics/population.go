package metrics

import (
	"github.com/san-kum/partsim/internal/sim"
)

// AliveMean is the mean live particle count over the observed frames.
type AliveMean struct {
	name    string
	sum     float64
	samples int
}

func NewAliveMean() *AliveMean {
	return &AliveMean{name: "alive_mean"}
}

func (a *AliveMean) Name() string { return a.name }

func (a *AliveMean) Observe(f sim.Frame) {
	a.sum += float64(f.Alive())
	a.samples++
}

func (a *AliveMean) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *AliveMean) Reset() {
	a.sum = 0
	a.samples = 0
}

// PeakAlive is the largest live particle count seen.
type PeakAlive struct {
	name string
	peak int
}

func NewPeakAlive() *PeakAlive {
	return &PeakAlive{name: "peak_alive"}
}

func (p *PeakAlive) Name() string { return p.name }

func (p *PeakAlive) Observe(f sim.Frame) {
	p.peak = max(p.peak, f.Alive())
}

func (p *PeakAlive) Value() float64 { return float64(p.peak) }
func (p *PeakAlive) Reset()         { p.peak = 0 }
