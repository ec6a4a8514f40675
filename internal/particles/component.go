package particles

// Component is a unit of the simulation pipeline bound to one controller.
//
// Hooks run in this order: Set when the controller binds, AllocateChannels and
// Init during Controller.Init, Start when a run begins, ActivateParticles and
// KillParticles for ranges announced by the emitter, Update once per frame, End
// when the run stops and Dispose when pooled resources are released.
type Component interface {
	Set(c *Controller)
	AllocateChannels() error
	Init() error
	Start()
	ActivateParticles(start, count int)
	KillParticles(start, count int)
	Update()
	End()
	Dispose()
}

// Influencer is a pipeline stage that owns one or more channels.
type Influencer interface {
	Component
	Copy() Influencer
}

// Emitter decides how many particles live each frame and announces activated
// and killed ranges back to the controller.
type Emitter interface {
	Component
	Copy() Emitter
	MaxParticleCount() int
	// Percent is the completion of the current emission cycle in [0, 1].
	Percent() float32
	IsComplete() bool
}

// Renderer publishes the controller's channels to a drawing backend. Its Update
// runs from Controller.Draw, not Controller.Update.
type Renderer interface {
	Component
	Copy() Renderer
}

// ComponentBase provides no-op hooks and the controller back-reference.
// Components embed it and override what they need.
type ComponentBase struct {
	controller *Controller
}

func (b *ComponentBase) Set(c *Controller)                  { b.controller = c }
func (b *ComponentBase) Controller() *Controller            { return b.controller }
func (b *ComponentBase) AllocateChannels() error            { return nil }
func (b *ComponentBase) Init() error                        { return nil }
func (b *ComponentBase) Start()                             {}
func (b *ComponentBase) ActivateParticles(start, count int) {}
func (b *ComponentBase) KillParticles(start, count int)     {}
func (b *ComponentBase) Update()                            {}
func (b *ComponentBase) End()                               {}
func (b *ComponentBase) Dispose()                           {}
