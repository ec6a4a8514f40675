package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/vmath"
)

// Effect is a named group of controllers that run and move together.
type Effect struct {
	Name        string
	Controllers []*Controller
}

func NewEffect(name string, controllers ...*Controller) *Effect {
	return &Effect{Name: name, Controllers: controllers}
}

func (e *Effect) Init() error {
	for _, c := range e.Controllers {
		if err := c.Init(); err != nil {
			return fmt.Errorf("effect %q: %w", e.Name, err)
		}
	}
	return nil
}

// Initialized reports whether every controller has a store.
func (e *Effect) Initialized() bool {
	for _, c := range e.Controllers {
		if c.Particles == nil {
			return false
		}
	}
	return true
}

func (e *Effect) Start() {
	for _, c := range e.Controllers {
		c.Start()
	}
}

func (e *Effect) End() {
	for _, c := range e.Controllers {
		c.End()
	}
}

func (e *Effect) Reset() {
	for _, c := range e.Controllers {
		c.Reset()
	}
}

func (e *Effect) Update(dt float32) {
	for _, c := range e.Controllers {
		c.Update(dt)
	}
}

func (e *Effect) Draw() {
	for _, c := range e.Controllers {
		c.Draw()
	}
}

// IsComplete reports whether every controller has finished emitting and has
// no live particles.
func (e *Effect) IsComplete() bool {
	for _, c := range e.Controllers {
		if !c.IsComplete() {
			return false
		}
	}
	return true
}

// Alive is the total number of live particles across controllers.
func (e *Effect) Alive() int {
	n := 0
	for _, c := range e.Controllers {
		if c.Particles != nil {
			n += c.Particles.Size()
		}
	}
	return n
}

func (e *Effect) SetTransform(m mgl32.Mat4) {
	for _, c := range e.Controllers {
		c.SetTransform(m)
	}
}

func (e *Effect) Translate(v mgl32.Vec3) {
	for _, c := range e.Controllers {
		c.Translate(v)
	}
}

func (e *Effect) Rotate(q mgl32.Quat) {
	for _, c := range e.Controllers {
		c.Rotate(q)
	}
}

func (e *Effect) RotateAxis(axis mgl32.Vec3, deg float32) {
	e.Rotate(vmath.FromAxisAngle(axis, deg))
}

func (e *Effect) ScaleBy(s mgl32.Vec3) {
	for _, c := range e.Controllers {
		c.ScaleBy(s)
	}
}

// FindController returns the first controller with the given name.
func (e *Effect) FindController(name string) *Controller {
	for _, c := range e.Controllers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// BoundingBox merges the boxes of every controller with live particles.
func (e *Effect) BoundingBox() (lo, hi mgl32.Vec3, ok bool) {
	for _, c := range e.Controllers {
		clo, chi, cok := c.BoundingBox()
		if !cok {
			continue
		}
		if !ok {
			lo, hi, ok = clo, chi, true
			continue
		}
		for k := range lo {
			lo[k] = min(lo[k], clo[k])
			hi[k] = max(hi[k], chi[k])
		}
	}
	return lo, hi, ok
}

// Copy returns an uninitialized effect with copies of every controller.
func (e *Effect) Copy() *Effect {
	cs := make([]*Controller, len(e.Controllers))
	for i, c := range e.Controllers {
		cs[i] = c.Copy()
	}
	return NewEffect(e.Name, cs...)
}

func (e *Effect) Dispose() {
	for _, c := range e.Controllers {
		c.Dispose()
	}
}
