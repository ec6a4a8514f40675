package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/vmath"
)

// newQuietEmitter never emits on its own; particles it owns live for lifeMs.
func newQuietEmitter(max int, lifeMs float32) *RegularEmitter {
	e := NewRegularEmitter()
	e.MaxParticles = max
	e.Life.SetLow(lifeMs)
	e.Life.SetHigh(lifeMs)
	return e
}

// fataler is satisfied by *testing.T and GinkgoT().
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// activate appends n particles the way the emitter does.
func activate(t fataler, c *Controller, n int) {
	t.Helper()
	c.ActivateParticles(c.Particles.Size(), n)
	if err := c.Particles.Extend(n); err != nil {
		t.Fatalf("extend: %v", err)
	}
}

func mustInit(t testing.TB, c *Controller) {
	t.Helper()
	if err := c.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
}

// recorder remembers the ranges announced to it.
type recorder struct {
	ComponentBase
	activated, killed int
	badKill           bool
}

func (r *recorder) ActivateParticles(start, count int) { r.activated += count }

func (r *recorder) KillParticles(start, count int) {
	r.killed += count
	if start != r.controller.Particles.Size() {
		r.badKill = true
	}
}

func (r *recorder) Copy() Influencer { return &recorder{} }

// countingEmitter counts how many copies were made and disposed.
type countingEmitter struct {
	*RegularEmitter
	copies, disposed *int
}

func newCountingEmitter(copies, disposed *int) *countingEmitter {
	return &countingEmitter{RegularEmitter: newQuietEmitter(4, 1000), copies: copies, disposed: disposed}
}

func (e *countingEmitter) Copy() Emitter {
	*e.copies++
	return &countingEmitter{
		RegularEmitter: e.RegularEmitter.Copy().(*RegularEmitter),
		copies:         e.copies,
		disposed:       e.disposed,
	}
}

func (e *countingEmitter) Dispose() { *e.disposed++ }

func approx(a, b float32) bool { return mgl32.Abs(a-b) < 1e-4 }

func position(c *Controller, i int) mgl32.Vec3 {
	pos := channels.Get(c.Particles, channels.Position)
	return vmath.Load3(pos.Data, i*pos.Stride)
}
