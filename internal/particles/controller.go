package particles

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/vmath"
)

// Controller runs one particle simulation: a store, an emitter, an ordered list
// of influencers and a renderer binding.
type Controller struct {
	Name        string
	Emitter     Emitter
	Influencers []Influencer
	Renderer    Renderer

	// Particles is nil until Init.
	Particles *channels.Store

	// Transform places generated local-space quantities in the world. Use the
	// transform methods so the decomposed scale stays current.
	Transform mgl32.Mat4
	scale     mgl32.Vec3

	DeltaTime    float32
	DeltaTimeSqr float32

	ids    *channels.IDAllocator
	rng    *rand.Rand
	seed   uint64
	copies uint64
}

// NewController returns an unbound controller. renderer may be nil for headless runs.
func NewController(name string, emitter Emitter, renderer Renderer, influencers ...Influencer) *Controller {
	c := &Controller{
		Name:        name,
		Emitter:     emitter,
		Renderer:    renderer,
		Influencers: influencers,
		Transform:   mgl32.Ident4(),
		scale:       mgl32.Vec3{1, 1, 1},
		ids:         channels.NewIDAllocator(),
	}
	c.SetSeed(rand.Uint64())
	return c
}

// SetSeed reseeds the controller's random source. Every random draw made by its
// components comes from this source.
func (c *Controller) SetSeed(seed uint64) {
	c.seed = seed
	c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (c *Controller) Seed() uint64     { return c.seed }
func (c *Controller) Rand() *rand.Rand { return c.rng }

// NewScratchID hands out a fresh identity for a scratch channel. Identities are
// unique within one Init.
func (c *Controller) NewScratchID() int { return c.ids.Next() }

// Scale is the non-uniform scale decomposed from Transform.
func (c *Controller) Scale() mgl32.Vec3 { return c.scale }

func (c *Controller) components() []Component {
	comps := make([]Component, 0, len(c.Influencers)+2)
	comps = append(comps, c.Emitter)
	for _, inf := range c.Influencers {
		comps = append(comps, inf)
	}
	if c.Renderer != nil {
		comps = append(comps, c.Renderer)
	}
	return comps
}

func (c *Controller) bind() {
	for _, comp := range c.components() {
		comp.Set(c)
	}
}

// Init binds every component, rebuilds the store at the emitter's maximum
// particle count and allocates channels in pipeline order. Calling Init again
// ends the current run and rebuilds the schema from scratch.
func (c *Controller) Init() error {
	if c.Emitter == nil {
		return fmt.Errorf("controller %q: %w", c.Name, ErrNoEmitter)
	}
	c.bind()
	if c.Particles != nil {
		c.End()
	}
	c.ids.Reset()
	c.Particles = channels.NewStore(c.Emitter.MaxParticleCount())

	comps := c.components()
	for _, comp := range comps {
		if err := comp.AllocateChannels(); err != nil {
			return fmt.Errorf("controller %q: allocate %s: %w", c.Name, componentName(comp), err)
		}
	}
	for _, comp := range comps {
		if err := comp.Init(); err != nil {
			return fmt.Errorf("controller %q: init %s: %w", c.Name, componentName(comp), err)
		}
	}
	return nil
}

// Start begins a run, emitter first.
func (c *Controller) Start() {
	c.Emitter.Start()
	for _, inf := range c.Influencers {
		inf.Start()
	}
}

// End stops the run, influencers first and the emitter last.
func (c *Controller) End() {
	for _, inf := range c.Influencers {
		inf.End()
	}
	c.Emitter.End()
}

func (c *Controller) Reset() {
	c.End()
	c.Start()
}

// ActivateParticles announces the rows [start, start+count) as newly live.
func (c *Controller) ActivateParticles(start, count int) {
	c.Emitter.ActivateParticles(start, count)
	for _, inf := range c.Influencers {
		inf.ActivateParticles(start, count)
	}
}

// KillParticles announces the rows [start, start+count) as dead.
func (c *Controller) KillParticles(start, count int) {
	c.Emitter.KillParticles(start, count)
	for _, inf := range c.Influencers {
		inf.KillParticles(start, count)
	}
}

// Update advances the simulation by dt seconds.
func (c *Controller) Update(dt float32) {
	c.DeltaTime = dt
	c.DeltaTimeSqr = dt * dt
	c.Emitter.Update()
	for _, inf := range c.Influencers {
		inf.Update()
	}
}

// Draw hands the live particles to the renderer.
func (c *Controller) Draw() {
	if c.Renderer != nil && c.Particles != nil && c.Particles.Size() > 0 {
		c.Renderer.Update()
	}
}

func (c *Controller) IsComplete() bool {
	return c.Emitter.IsComplete()
}

func (c *Controller) Dispose() {
	c.Emitter.Dispose()
	for _, inf := range c.Influencers {
		inf.Dispose()
	}
	if c.Renderer != nil {
		c.Renderer.Dispose()
	}
}

// Copy returns an independent, uninitialized controller with copies of every
// component and the same transform. The copy's seed derives from Seed and the
// number of copies made so far; the random stream of c is not touched.
func (c *Controller) Copy() *Controller {
	infs := make([]Influencer, len(c.Influencers))
	for i, inf := range c.Influencers {
		infs[i] = inf.Copy()
	}
	var r Renderer
	if c.Renderer != nil {
		r = c.Renderer.Copy()
	}
	cp := NewController(c.Name, c.Emitter.Copy(), r, infs...)
	cp.SetTransform(c.Transform)
	c.copies++
	cp.SetSeed(c.seed + c.copies*0x9e3779b97f4a7c15)
	return cp
}

// BoundingBox returns the extent of the live particle positions. ok is false
// when there are no live particles or no position channel.
func (c *Controller) BoundingBox() (lo, hi mgl32.Vec3, ok bool) {
	if c.Particles == nil || c.Particles.Size() == 0 {
		return lo, hi, false
	}
	pos := channels.Get(c.Particles, channels.Position)
	if pos == nil {
		return lo, hi, false
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for i, n := 0, c.Particles.Size()*pos.Stride; i < n; i += pos.Stride {
		p := vmath.Load3(pos.Data, i)
		for k := range p {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi, true
}

// SetTransform replaces the transform and recomputes the decomposed scale.
func (c *Controller) SetTransform(m mgl32.Mat4) {
	c.Transform = m
	c.scale = vmath.Scale(m)
}

// SetTRS sets the transform from a translation, rotation and uniform scale.
func (c *Controller) SetTRS(pos mgl32.Vec3, rot mgl32.Quat, scale float32) {
	c.SetTransform(vmath.TRS(pos, rot, mgl32.Vec3{scale, scale, scale}))
}

// Mul post-multiplies the transform by m.
func (c *Controller) Mul(m mgl32.Mat4) {
	c.SetTransform(c.Transform.Mul4(m))
}

func (c *Controller) Translate(v mgl32.Vec3) {
	c.Mul(mgl32.Translate3D(v[0], v[1], v[2]))
}

func (c *Controller) SetTranslation(v mgl32.Vec3) {
	c.Transform.SetCol(3, v.Vec4(1))
}

func (c *Controller) Rotate(q mgl32.Quat) {
	c.Mul(q.Mat4())
}

func (c *Controller) RotateAxis(axis mgl32.Vec3, deg float32) {
	c.Rotate(vmath.FromAxisAngle(axis, deg))
}

func (c *Controller) ScaleBy(s mgl32.Vec3) {
	c.Mul(mgl32.Scale3D(s[0], s[1], s[2]))
}

// FindInfluencer returns the first influencer of type T.
func FindInfluencer[T Influencer](c *Controller) (T, int, bool) {
	for i, inf := range c.Influencers {
		if t, ok := inf.(T); ok {
			return t, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// ReplaceInfluencer swaps the first influencer of type T for repl. The
// controller must be re-initialized afterwards.
func ReplaceInfluencer[T Influencer](c *Controller, repl Influencer) bool {
	_, i, ok := FindInfluencer[T](c)
	if !ok {
		return false
	}
	c.Influencers[i] = repl
	return true
}

func componentName(comp Component) string {
	return fmt.Sprintf("%T", comp)
}

