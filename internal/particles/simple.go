package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
)

// SimpleInfluencer drives a one-float channel over each particle's life:
//
//	value = start + diff*Value.Scale(lifePercent)
//
// start and diff are drawn once at activation and cached per particle in a
// scratch interpolation channel.
type SimpleInfluencer struct {
	ComponentBase
	Value  values.Scaled
	Target channels.Descriptor[float32]

	// scaleByController multiplies start and diff by the controller's X scale.
	scaleByController bool

	value         *channels.Channel[float32]
	interpolation *channels.Channel[float32]
	life          *channels.Channel[float32]
}

// NewSimpleInfluencer returns an influencer writing the given stride-1 channel.
func NewSimpleInfluencer(target channels.Descriptor[float32]) *SimpleInfluencer {
	return &SimpleInfluencer{Value: values.NewScaled(), Target: target}
}

func (s *SimpleInfluencer) AllocateChannels() error {
	store := s.controller.Particles
	var err error
	if s.value, err = channels.Add(store, s.Target); err != nil {
		return err
	}
	scratch := channels.Interpolation.WithID(s.controller.NewScratchID())
	if s.interpolation, err = channels.Add(store, scratch); err != nil {
		return err
	}
	s.life, err = channels.Add(store, channels.Life)
	return err
}

func (s *SimpleInfluencer) ActivateParticles(start, count int) {
	rng := s.controller.Rand()
	factor := float32(1)
	if s.scaleByController {
		factor = s.controller.Scale().X()
	}
	initial := s.Value.Scale(0)
	for i, a := start*s.value.Stride, start*s.interpolation.Stride; i < (start+count)*s.value.Stride; i, a = i+s.value.Stride, a+s.interpolation.Stride {
		lo, diff := s.Value.StartDiff(rng)
		lo, diff = lo*factor, diff*factor
		s.interpolation.Data[a+channels.InterpolationStartOffset] = lo
		s.interpolation.Data[a+channels.InterpolationDiffOffset] = diff
		s.value.Data[i] = lo + diff*initial
	}
}

func (s *SimpleInfluencer) Update() {
	n := s.controller.Particles.Size()
	for i, a, l := 0, 0, 0; i < n; i, a, l = i+1, a+s.interpolation.Stride, l+s.life.Stride {
		start := s.interpolation.Data[a+channels.InterpolationStartOffset]
		diff := s.interpolation.Data[a+channels.InterpolationDiffOffset]
		s.value.Data[i*s.value.Stride] = start + diff*s.Value.Scale(s.life.Data[l+channels.LifePercentOffset])
	}
}

func (s *SimpleInfluencer) Copy() Influencer {
	return &SimpleInfluencer{Value: s.Value.Clone(), Target: s.Target, scaleByController: s.scaleByController}
}

// ScaleInfluencer drives the scale channel, scaled by the controller transform.
type ScaleInfluencer struct {
	SimpleInfluencer
}

func NewScaleInfluencer() *ScaleInfluencer {
	s := &ScaleInfluencer{SimpleInfluencer: *NewSimpleInfluencer(channels.Scale)}
	s.scaleByController = true
	return s
}

func (s *ScaleInfluencer) Copy() Influencer {
	cp := NewScaleInfluencer()
	cp.Value = s.Value.Clone()
	return cp
}
