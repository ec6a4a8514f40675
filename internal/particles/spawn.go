package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
	"github.com/san-kum/partsim/internal/vmath"
)

// SpawnInfluencer places activated particles by sampling Shape and transforming
// the sample by the controller transform. It also stamps the controller's
// rotation into the 3D rotation channel.
type SpawnInfluencer struct {
	ComponentBase
	Shape values.SpawnShape

	position *channels.Channel[float32]
	rotation *channels.Channel[float32]
}

func NewSpawnInfluencer(shape values.SpawnShape) *SpawnInfluencer {
	if shape == nil {
		shape = values.NewPoint()
	}
	return &SpawnInfluencer{Shape: shape}
}

func (s *SpawnInfluencer) AllocateChannels() error {
	var err error
	if s.position, err = channels.Add(s.controller.Particles, channels.Position); err != nil {
		return err
	}
	s.rotation, err = channels.Add(s.controller.Particles, channels.Rotation3D, channels.IdentityRotation3D)
	return err
}

func (s *SpawnInfluencer) Start() {
	s.Shape.Start(s.controller.Rand())
}

func (s *SpawnInfluencer) ActivateParticles(start, count int) {
	c := s.controller
	rng := c.Rand()
	percent := c.Emitter.Percent()
	for i, end := start*s.position.Stride, (start+count)*s.position.Stride; i < end; i += s.position.Stride {
		vmath.Store3(vmath.Transform(c.Transform, s.Shape.Spawn(rng, percent)), s.position.Data, i)
	}

	rot := vmath.Rotation(c.Transform)
	for i, end := start*s.rotation.Stride, (start+count)*s.rotation.Stride; i < end; i += s.rotation.Stride {
		vmath.Store4(rot, s.rotation.Data, i)
	}
}

func (s *SpawnInfluencer) Copy() Influencer {
	return &SpawnInfluencer{Shape: s.Shape.Copy()}
}
