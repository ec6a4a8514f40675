package values

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidCurve indicates a scale curve or gradient whose keys do not line up.
var ErrInvalidCurve = errors.New("values: invalid curve")

// Ranged is a number drawn uniformly from [LowMin, LowMax]. Active marks optional
// values; components treat an inactive value as zero.
type Ranged struct {
	Active bool    `yaml:"active"`
	LowMin float32 `yaml:"low_min"`
	LowMax float32 `yaml:"low_max"`
}

func NewRanged(lo, hi float32) Ranged {
	return Ranged{Active: true, LowMin: lo, LowMax: hi}
}

func (r *Ranged) SetLow(v float32) { r.LowMin, r.LowMax = v, v }

func (r *Ranged) NewLowValue(rng *rand.Rand) float32 {
	return r.LowMin + (r.LowMax-r.LowMin)*rng.Float32()
}

// Scaled extends Ranged with a high range and a piecewise-linear Scale(t) curve
// described by parallel Scaling/Timeline slices.
type Scaled struct {
	Ranged   `yaml:",inline"`
	HighMin  float32   `yaml:"high_min"`
	HighMax  float32   `yaml:"high_max"`
	Relative bool      `yaml:"relative"`
	Scaling  []float32 `yaml:"scaling"`
	Timeline []float32 `yaml:"timeline"`
}

// NewScaled returns an active value with a constant scale of 1.
func NewScaled() Scaled {
	return Scaled{
		Ranged:   Ranged{Active: true},
		Scaling:  []float32{1},
		Timeline: []float32{0},
	}
}

func (s *Scaled) SetHigh(v float32)           { s.HighMin, s.HighMax = v, v }
func (s *Scaled) SetHighRange(lo, hi float32) { s.HighMin, s.HighMax = lo, hi }

func (s *Scaled) NewHighValue(rng *rand.Rand) float32 {
	return s.HighMin + (s.HighMax-s.HighMin)*rng.Float32()
}

// StartDiff draws a low and high sample and returns the interpolation pair. A
// relative value keeps high as the delta; otherwise the delta is high-low.
func (s *Scaled) StartDiff(rng *rand.Rand) (start, diff float32) {
	start = s.NewLowValue(rng)
	diff = s.NewHighValue(rng)
	if !s.Relative {
		diff -= start
	}
	return start, diff
}

// Scale evaluates the curve at t. Past the last key the last scaling value holds.
func (s *Scaled) Scale(t float32) float32 {
	n := len(s.Timeline)
	if n == 0 {
		return 1
	}
	end := -1
	for i := 1; i < n; i++ {
		if s.Timeline[i] > t {
			end = i
			break
		}
	}
	if end == -1 {
		return s.Scaling[n-1]
	}
	start := end - 1
	v0, t0 := s.Scaling[start], s.Timeline[start]
	return v0 + (s.Scaling[end]-v0)*((t-t0)/(s.Timeline[end]-t0))
}

// Validate reports ErrInvalidCurve unless Scaling and Timeline have equal length
// and the timeline never decreases. An empty curve scales by 1.
func (s *Scaled) Validate() error {
	if len(s.Scaling) != len(s.Timeline) {
		return fmt.Errorf("%w: %d scaling values for %d timeline keys", ErrInvalidCurve, len(s.Scaling), len(s.Timeline))
	}
	return checkTimeline(s.Timeline)
}

func checkTimeline(tl []float32) error {
	for i := 1; i < len(tl); i++ {
		if tl[i] < tl[i-1] {
			return fmt.Errorf("%w: timeline key %d (%g) before key %d (%g)", ErrInvalidCurve, i, tl[i], i-1, tl[i-1])
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s Scaled) Clone() Scaled {
	s.Scaling = append([]float32(nil), s.Scaling...)
	s.Timeline = append([]float32(nil), s.Timeline...)
	return s
}
