package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
)

// ColorRandom gives every activated particle a uniformly random RGBA color.
type ColorRandom struct {
	ComponentBase
	color *channels.Channel[float32]
}

func NewColorRandom() *ColorRandom { return &ColorRandom{} }

func (r *ColorRandom) AllocateChannels() error {
	var err error
	r.color, err = channels.Add(r.controller.Particles, channels.Color, channels.WhiteColor)
	return err
}

func (r *ColorRandom) ActivateParticles(start, count int) {
	rng := r.controller.Rand()
	for i, end := start*r.color.Stride, (start+count)*r.color.Stride; i < end; i += r.color.Stride {
		r.color.Data[i+channels.RedOffset] = rng.Float32()
		r.color.Data[i+channels.GreenOffset] = rng.Float32()
		r.color.Data[i+channels.BlueOffset] = rng.Float32()
		r.color.Data[i+channels.AlphaOffset] = rng.Float32()
	}
}

func (r *ColorRandom) Copy() Influencer { return NewColorRandom() }

// ColorSingle evaluates Gradient at each particle's life percent for RGB and
// interpolates alpha with the cached start/diff of Alpha.
type ColorSingle struct {
	ComponentBase
	Gradient values.Gradient
	Alpha    values.Scaled

	color *channels.Channel[float32]
	alpha *channels.Channel[float32]
	life  *channels.Channel[float32]
}

func NewColorSingle() *ColorSingle {
	c := &ColorSingle{Gradient: values.NewGradient(), Alpha: values.NewScaled()}
	c.Alpha.SetHigh(1)
	return c
}

func (s *ColorSingle) AllocateChannels() error {
	store := s.controller.Particles
	var err error
	if s.color, err = channels.Add(store, channels.Color, channels.WhiteColor); err != nil {
		return err
	}
	if s.alpha, err = channels.Add(store, channels.Interpolation.WithID(s.controller.NewScratchID())); err != nil {
		return err
	}
	s.life, err = channels.Add(store, channels.Life)
	return err
}

func (s *ColorSingle) ActivateParticles(start, count int) {
	rng := s.controller.Rand()
	initial := s.Alpha.Scale(0)
	for i, a, end := start*s.color.Stride, start*s.alpha.Stride, (start+count)*s.color.Stride; i < end; i, a = i+s.color.Stride, a+s.alpha.Stride {
		lo, diff := s.Alpha.StartDiff(rng)
		s.Gradient.ColorAt(0, s.color.Data, i)
		s.color.Data[i+channels.AlphaOffset] = lo + diff*initial
		s.alpha.Data[a+channels.InterpolationStartOffset] = lo
		s.alpha.Data[a+channels.InterpolationDiffOffset] = diff
	}
}

func (s *ColorSingle) Update() {
	n := s.controller.Particles.Size()
	for p, i, a, l := 0, 0, 0, 0; p < n; p, i, a, l = p+1, i+s.color.Stride, a+s.alpha.Stride, l+s.life.Stride {
		t := s.life.Data[l+channels.LifePercentOffset]
		s.Gradient.ColorAt(t, s.color.Data, i)
		s.color.Data[i+channels.AlphaOffset] = s.alpha.Data[a+channels.InterpolationStartOffset] +
			s.alpha.Data[a+channels.InterpolationDiffOffset]*s.Alpha.Scale(t)
	}
}

func (s *ColorSingle) Copy() Influencer {
	return &ColorSingle{Gradient: s.Gradient.Clone(), Alpha: s.Alpha.Clone()}
}
