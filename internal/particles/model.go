package particles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/pool"
	"github.com/san-kum/partsim/internal/vmath"
)

// Model is a renderable asset that particles can carry instances of.
type Model interface {
	Name() string
	Instantiate() ModelInstance
}

// ModelInstance is one placed copy of a Model.
type ModelInstance interface {
	SetTransform(m mgl32.Mat4)
	Dispose()
}

// Tinted is implemented by model instances that accept a per-particle color.
type Tinted interface {
	SetColor(r, g, b, a float32)
}

// ModelChannel holds one model instance per particle.
var ModelChannel = channels.Descriptor[ModelInstance]{ID: channels.ModelInstanceID, Stride: 1}

// ModelSingle instantiates the first model once per particle slot at Init.
type ModelSingle struct {
	ComponentBase
	Models []Model

	instances *channels.Channel[ModelInstance]
}

func NewModelSingle(models ...Model) *ModelSingle { return &ModelSingle{Models: models} }

func (s *ModelSingle) AllocateChannels() error {
	if len(s.Models) == 0 {
		return ErrNoTemplates
	}
	s.Dispose()
	var err error
	s.instances, err = channels.Add(s.controller.Particles, ModelChannel)
	return err
}

func (s *ModelSingle) Init() error {
	for i := range s.instances.Data {
		if s.instances.Data[i] == nil {
			s.instances.Data[i] = s.Models[0].Instantiate()
		}
	}
	return nil
}

func (s *ModelSingle) Dispose() {
	if s.instances == nil {
		return
	}
	for i, inst := range s.instances.Data {
		if inst != nil {
			inst.Dispose()
			s.instances.Data[i] = nil
		}
	}
}

func (s *ModelSingle) Copy() Influencer {
	return NewModelSingle(append([]Model(nil), s.Models...)...)
}

// ModelRandom hands each activated particle a pooled instance of a randomly
// chosen model.
type ModelRandom struct {
	ComponentBase
	Models []Model

	instances *channels.Channel[ModelInstance]
	pool      *pool.Pool[ModelInstance]
}

func NewModelRandom(models ...Model) *ModelRandom { return &ModelRandom{Models: models} }

func (r *ModelRandom) AllocateChannels() error {
	if len(r.Models) == 0 {
		return ErrNoTemplates
	}
	var err error
	r.instances, err = channels.Add(r.controller.Particles, ModelChannel)
	return err
}

func (r *ModelRandom) Init() error {
	if r.pool != nil {
		r.pool.Clear()
	}
	r.pool = pool.New(func() ModelInstance {
		return r.Models[r.controller.Rand().IntN(len(r.Models))].Instantiate()
	}, ModelInstance.Dispose, r.controller.Particles.Capacity())
	return nil
}

func (r *ModelRandom) ActivateParticles(start, count int) {
	for i := start; i < start+count; i++ {
		r.instances.Data[i] = r.pool.Obtain()
	}
}

func (r *ModelRandom) KillParticles(start, count int) {
	for i := start; i < start+count; i++ {
		r.release(i)
	}
}

func (r *ModelRandom) End() {
	if r.instances == nil {
		return
	}
	for i := range r.instances.Data {
		r.release(i)
	}
}

func (r *ModelRandom) release(i int) {
	if inst := r.instances.Data[i]; inst != nil {
		r.pool.Free(inst)
		r.instances.Data[i] = nil
	}
}

func (r *ModelRandom) Dispose() {
	if r.pool == nil {
		return
	}
	r.End()
	r.pool.Clear()
}

func (r *ModelRandom) Copy() Influencer {
	return NewModelRandom(append([]Model(nil), r.Models...)...)
}

// ModelFinalizer pushes each particle's placement, and color when present, to
// its model instance. It must be the last influencer.
type ModelFinalizer struct {
	ComponentBase

	instances *channels.Channel[ModelInstance]
	position  *channels.Channel[float32]
	rotation  *channels.Channel[float32]
	scale     *channels.Channel[float32]
	color     *channels.Channel[float32]
}

func NewModelFinalizer() *ModelFinalizer { return &ModelFinalizer{} }

func (f *ModelFinalizer) AllocateChannels() error {
	var err error
	f.position, err = channels.Add(f.controller.Particles, channels.Position)
	return err
}

func (f *ModelFinalizer) Init() error {
	store := f.controller.Particles
	if f.instances = channels.Get(store, ModelChannel); f.instances == nil {
		return &ChannelError{Component: "ModelFinalizer", Channel: ModelChannel.String()}
	}
	f.rotation = channels.Get(store, channels.Rotation3D)
	f.scale = channels.Get(store, channels.Scale)
	f.color = channels.Get(store, channels.Color)
	return nil
}

func (f *ModelFinalizer) Update() {
	n := f.controller.Particles.Size()
	for i := 0; i < n; i++ {
		inst := f.instances.Data[i]
		if inst == nil {
			continue
		}
		pos, rot, s := particleTRS(i, f.position, f.rotation, f.scale)
		inst.SetTransform(vmath.TRS(pos, rot, mgl32.Vec3{s, s, s}))
		if t, ok := inst.(Tinted); ok && f.color != nil {
			k := i * f.color.Stride
			c := f.color.Data[k : k+4]
			t.SetColor(c[channels.RedOffset], c[channels.GreenOffset], c[channels.BlueOffset], c[channels.AlphaOffset])
		}
	}
}

func (f *ModelFinalizer) Copy() Influencer { return NewModelFinalizer() }
