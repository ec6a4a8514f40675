package particles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/pool"
	"github.com/san-kum/partsim/internal/vmath"
)

// ControllerChannel holds one nested controller per particle.
var ControllerChannel = channels.Descriptor[*Controller]{ID: channels.ParticleControllerID, Stride: 1}

func cloneTemplates(ts []*Controller) []*Controller {
	out := make([]*Controller, len(ts))
	for i, t := range ts {
		out[i] = t.Copy()
	}
	return out
}

// newNested copies and initializes template t.
func newNested(t *Controller) (*Controller, error) {
	inst := t.Copy()
	if err := inst.Init(); err != nil {
		inst.Dispose()
		return nil, err
	}
	return inst, nil
}

// ControllerSingle gives every particle slot its own copy of the first
// template. Instances start when their particle activates and end when it dies.
type ControllerSingle struct {
	ComponentBase
	Templates []*Controller

	controllers *channels.Channel[*Controller]
	instances   []*Controller
}

func NewControllerSingle(templates ...*Controller) *ControllerSingle {
	return &ControllerSingle{Templates: templates}
}

func (s *ControllerSingle) AllocateChannels() error {
	if len(s.Templates) == 0 {
		return ErrNoTemplates
	}
	var err error
	s.controllers, err = channels.Add(s.controller.Particles, ControllerChannel)
	return err
}

func (s *ControllerSingle) Init() error {
	s.disposeInstances()
	capacity := s.controller.Particles.Capacity()
	for i := 0; i < capacity; i++ {
		inst, err := newNested(s.Templates[0])
		if err != nil {
			return err
		}
		s.controllers.Data[i] = inst
		s.instances = append(s.instances, inst)
	}
	return nil
}

func (s *ControllerSingle) ActivateParticles(start, count int) {
	for _, inst := range s.controllers.Data[start : start+count] {
		inst.Start()
	}
}

func (s *ControllerSingle) KillParticles(start, count int) {
	for _, inst := range s.controllers.Data[start : start+count] {
		inst.End()
	}
}

// End ends the instances of the rows still live, before the emitter drops them.
func (s *ControllerSingle) End() {
	if s.controllers == nil {
		return
	}
	for _, inst := range s.controllers.Data[:s.controller.Particles.Size()] {
		if inst != nil {
			inst.End()
		}
	}
}

func (s *ControllerSingle) Dispose() { s.disposeInstances() }

func (s *ControllerSingle) disposeInstances() {
	for _, inst := range s.instances {
		inst.Dispose()
	}
	s.instances = s.instances[:0]
}

func (s *ControllerSingle) Copy() Influencer {
	return NewControllerSingle(cloneTemplates(s.Templates)...)
}

// ControllerRandom hands each activated particle a pooled copy of a randomly
// chosen template and returns it to the pool when the particle dies.
type ControllerRandom struct {
	ComponentBase
	Templates []*Controller

	controllers *channels.Channel[*Controller]
	pool        *pool.Pool[*Controller]
}

func NewControllerRandom(templates ...*Controller) *ControllerRandom {
	return &ControllerRandom{Templates: templates}
}

func (r *ControllerRandom) AllocateChannels() error {
	if len(r.Templates) == 0 {
		return ErrNoTemplates
	}
	var err error
	r.controllers, err = channels.Add(r.controller.Particles, ControllerChannel)
	return err
}

// Init disposes everything pooled so far, since the templates may have changed,
// and refills the pool up to the particle capacity.
func (r *ControllerRandom) Init() error {
	capacity := r.controller.Particles.Capacity()
	if r.pool != nil {
		r.pool.Clear()
	}
	r.pool = pool.New(r.newInstance, (*Controller).Dispose, capacity)
	for _, t := range r.Templates {
		inst, err := newNested(t)
		if err != nil {
			return err
		}
		r.pool.Free(inst)
	}
	r.pool.Fill(capacity - r.pool.Len())
	return nil
}

func (r *ControllerRandom) newInstance() *Controller {
	t := r.Templates[r.controller.Rand().IntN(len(r.Templates))]
	inst, err := newNested(t)
	if err != nil {
		// Every template initialized once in Init; a later failure is a bug.
		panic(err)
	}
	return inst
}

func (r *ControllerRandom) ActivateParticles(start, count int) {
	for i := start; i < start+count; i++ {
		inst := r.pool.Obtain()
		inst.Start()
		r.controllers.Data[i] = inst
	}
}

func (r *ControllerRandom) KillParticles(start, count int) {
	for i := start; i < start+count; i++ {
		r.release(i)
	}
}

// End returns every live instance, since the emitter drops live particles
// without announcing them.
func (r *ControllerRandom) End() {
	if r.controllers == nil {
		return
	}
	for i := range r.controllers.Data {
		r.release(i)
	}
}

func (r *ControllerRandom) release(i int) {
	inst := r.controllers.Data[i]
	if inst == nil {
		return
	}
	inst.End()
	r.pool.Free(inst)
	r.controllers.Data[i] = nil
}

func (r *ControllerRandom) Dispose() {
	if r.pool == nil || r.controllers == nil {
		return
	}
	for i, inst := range r.controllers.Data {
		if inst != nil {
			inst.Dispose()
			r.controllers.Data[i] = nil
		}
	}
	r.pool.Clear()
}

// Pooled is the number of idle instances waiting in the pool.
func (r *ControllerRandom) Pooled() int {
	if r.pool == nil {
		return 0
	}
	return r.pool.Len()
}

func (r *ControllerRandom) Copy() Influencer {
	return NewControllerRandom(cloneTemplates(r.Templates)...)
}

// ControllerFinalizer places every nested controller at its particle and
// advances it by the parent's frame time. It must be the last influencer.
type ControllerFinalizer struct {
	ComponentBase

	controllers *channels.Channel[*Controller]
	position    *channels.Channel[float32]
	scale       *channels.Channel[float32]
	rotation    *channels.Channel[float32]
}

func NewControllerFinalizer() *ControllerFinalizer { return &ControllerFinalizer{} }

func (f *ControllerFinalizer) AllocateChannels() error {
	var err error
	f.position, err = channels.Add(f.controller.Particles, channels.Position)
	return err
}

func (f *ControllerFinalizer) Init() error {
	store := f.controller.Particles
	if f.controllers = channels.Get(store, ControllerChannel); f.controllers == nil {
		return &ChannelError{Component: "ControllerFinalizer", Channel: ControllerChannel.String()}
	}
	f.scale = channels.Get(store, channels.Scale)
	f.rotation = channels.Get(store, channels.Rotation3D)
	return nil
}

func (f *ControllerFinalizer) Update() {
	parent := f.controller
	n := parent.Particles.Size()
	for i := 0; i < n; i++ {
		inst := f.controllers.Data[i]
		if inst == nil {
			continue
		}
		pos, rot, scale := particleTRS(i, f.position, f.rotation, f.scale)
		inst.SetTRS(pos, rot, scale)
		inst.Update(parent.DeltaTime)
	}
}

func (f *ControllerFinalizer) Copy() Influencer { return NewControllerFinalizer() }

// particleTRS reads row i of the placement channels. rotation and scale are
// optional and default to identity and 1.
func particleTRS(i int, position, rotation, scale *channels.Channel[float32]) (mgl32.Vec3, mgl32.Quat, float32) {
	pos := vmath.Load3(position.Data, i*position.Stride)
	rot := mgl32.QuatIdent()
	if rotation != nil {
		rot = vmath.Load4(rotation.Data, i*rotation.Stride)
	}
	s := float32(1)
	if scale != nil {
		s = scale.Data[i*scale.Stride]
	}
	return pos, rot, s
}
