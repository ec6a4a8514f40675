package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/integrate"
)

// DynamicsModifier contributes to the acceleration or angular velocity
// channels of a DynamicsInfluencer. Modifiers accumulate into those channels;
// the influencer zeroes them at the start of every update.
type DynamicsModifier interface {
	Component
	Copy() DynamicsModifier
}

// DynamicsInfluencer integrates the feedback channels its modifiers create.
// Translation uses position-Verlet when an acceleration channel exists and
// rotation is integrated for whichever angular velocity channels exist.
type DynamicsInfluencer struct {
	ComponentBase
	Modifiers []DynamicsModifier

	acceleration *channels.Channel[float32]
	position     *channels.Channel[float32]
	previous     *channels.Channel[float32]

	angular2D  *channels.Channel[float32]
	rotation2D *channels.Channel[float32]
	angular3D  *channels.Channel[float32]
	rotation3D *channels.Channel[float32]
}

func NewDynamicsInfluencer(modifiers ...DynamicsModifier) *DynamicsInfluencer {
	return &DynamicsInfluencer{Modifiers: modifiers}
}

func (d *DynamicsInfluencer) Set(c *Controller) {
	d.ComponentBase.Set(c)
	for _, m := range d.Modifiers {
		m.Set(c)
	}
}

// AllocateChannels lets every modifier allocate first and then adds only the
// integration targets whose feedback channel now exists.
func (d *DynamicsInfluencer) AllocateChannels() error {
	for _, m := range d.Modifiers {
		if err := m.AllocateChannels(); err != nil {
			return err
		}
	}

	store := d.controller.Particles
	var err error
	d.position, d.previous, d.rotation2D, d.rotation3D = nil, nil, nil, nil

	if d.acceleration = channels.Get(store, channels.Acceleration); d.acceleration != nil {
		if d.position, err = channels.Add(store, channels.Position); err != nil {
			return err
		}
		if d.previous, err = channels.Add(store, channels.PreviousPosition); err != nil {
			return err
		}
	}
	if d.angular2D = channels.Get(store, channels.AngularVelocity2D); d.angular2D != nil {
		if d.rotation2D, err = channels.Add(store, channels.Rotation2D, channels.IdentityRotation2D); err != nil {
			return err
		}
	}
	if d.angular3D = channels.Get(store, channels.AngularVelocity3D); d.angular3D != nil {
		if d.rotation3D, err = channels.Add(store, channels.Rotation3D, channels.IdentityRotation3D); err != nil {
			return err
		}
	}
	return nil
}

func (d *DynamicsInfluencer) Init() error {
	for _, m := range d.Modifiers {
		if err := m.Init(); err != nil {
			return err
		}
	}
	return nil
}

func (d *DynamicsInfluencer) Start() {
	for _, m := range d.Modifiers {
		m.Start()
	}
}

func (d *DynamicsInfluencer) ActivateParticles(start, count int) {
	if d.acceleration != nil {
		integrate.Prime(d.position.Data, d.previous.Data, start, count)
	}
	if d.rotation2D != nil {
		d.rotation2D.Fill(start, start+count, 1, 0)
	}
	if d.rotation3D != nil {
		d.rotation3D.Fill(start, start+count, 0, 0, 0, 1)
	}
	for _, m := range d.Modifiers {
		m.ActivateParticles(start, count)
	}
}

func (d *DynamicsInfluencer) KillParticles(start, count int) {
	for _, m := range d.Modifiers {
		m.KillParticles(start, count)
	}
}

func (d *DynamicsInfluencer) Update() {
	c := d.controller
	n := c.Particles.Size()
	if d.acceleration != nil {
		d.acceleration.Zero(n)
	}
	if d.angular2D != nil {
		d.angular2D.Zero(n)
	}
	if d.angular3D != nil {
		d.angular3D.Zero(n)
	}

	for _, m := range d.Modifiers {
		m.Update()
	}

	if d.acceleration != nil {
		integrate.Verlet(d.position.Data, d.previous.Data, d.acceleration.Data, n, c.DeltaTimeSqr)
	}
	if d.angular2D != nil {
		integrate.Rotate2D(d.rotation2D.Data, d.angular2D.Data, n, c.DeltaTime)
	}
	if d.angular3D != nil {
		integrate.Rotate3D(d.rotation3D.Data, d.angular3D.Data, n, c.DeltaTime)
	}
}

func (d *DynamicsInfluencer) End() {
	for _, m := range d.Modifiers {
		m.End()
	}
}

func (d *DynamicsInfluencer) Dispose() {
	for _, m := range d.Modifiers {
		m.Dispose()
	}
}

func (d *DynamicsInfluencer) Copy() Influencer {
	mods := make([]DynamicsModifier, len(d.Modifiers))
	for i, m := range d.Modifiers {
		mods[i] = m.Copy()
	}
	return NewDynamicsInfluencer(mods...)
}
