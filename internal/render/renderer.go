// Package render binds controllers to drawing backends. A BatchRenderer is the
// pipeline component that publishes a controller's channels; a Batch collects
// those views between Begin and End.
package render

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/particles"
)

// RenderData is the read-only view of one controller's drawable channels.
type RenderData struct {
	Controller *particles.Controller
	Position   *channels.Channel[float32]
	Color      *channels.Channel[float32]
	Scale      *channels.Channel[float32]
	Region     *channels.Channel[float32]
	Rotation   *channels.Channel[float32]
}

// Count is the number of live particles behind the view.
func (d *RenderData) Count() int { return d.Controller.Particles.Size() }

// Batch receives render data between Begin and End.
type Batch interface {
	particles.Batch
	Draw(data *RenderData)
}

// BatchRenderer allocates the drawable channels with their defaults and submits
// them to Batch whenever its controller draws.
type BatchRenderer struct {
	particles.ComponentBase
	Batch Batch

	data RenderData
}

func NewBatchRenderer(b Batch) *BatchRenderer { return &BatchRenderer{Batch: b} }

func (r *BatchRenderer) AllocateChannels() error {
	store := r.Controller().Particles
	var err error
	if r.data.Position, err = channels.Add(store, channels.Position); err != nil {
		return err
	}
	if r.data.Color, err = channels.Add(store, channels.Color, channels.WhiteColor); err != nil {
		return err
	}
	if r.data.Scale, err = channels.Add(store, channels.Scale, channels.UnitScale); err != nil {
		return err
	}
	if r.data.Region, err = channels.Add(store, channels.TextureRegion, channels.FullTextureRegion); err != nil {
		return err
	}
	r.data.Rotation, err = channels.Add(store, channels.Rotation3D, channels.IdentityRotation3D)
	r.data.Controller = r.Controller()
	return err
}

func (r *BatchRenderer) Update() {
	if r.Batch != nil {
		r.Batch.Draw(&r.data)
	}
}

func (r *BatchRenderer) Copy() particles.Renderer { return NewBatchRenderer(r.Batch) }

// NestedRenderer draws the nested controllers carried by live particles.
type NestedRenderer struct {
	particles.ComponentBase
	controllers *channels.Channel[*particles.Controller]
}

func NewNestedRenderer() *NestedRenderer { return &NestedRenderer{} }

func (r *NestedRenderer) Init() error {
	ch := channels.Get(r.Controller().Particles, particles.ControllerChannel)
	if ch == nil {
		return &particles.ChannelError{Component: "NestedRenderer", Channel: particles.ControllerChannel.String()}
	}
	r.controllers = ch
	return nil
}

func (r *NestedRenderer) Update() {
	for _, c := range r.controllers.Data[:r.Controller().Particles.Size()] {
		if c != nil {
			c.Draw()
		}
	}
}

func (r *NestedRenderer) Copy() particles.Renderer { return NewNestedRenderer() }
