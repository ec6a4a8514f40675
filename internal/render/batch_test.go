package render_test

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/sorter"
	"github.com/san-kum/partsim/internal/values"
	"github.com/san-kum/partsim/internal/vmath"
)

func lineController(name string, b render.Batch, z float32, n int) *particles.Controller {
	e := particles.NewRegularEmitter()
	e.MaxParticles = n
	e.MinParticles = n
	e.Life.SetLow(1000)
	e.Life.SetHigh(1000)
	line := values.NewLine()
	line.Depth.SetLow(z)
	line.Depth.SetHigh(z)
	c := particles.NewController(name, e, render.NewBatchRenderer(b), particles.NewSpawnInfluencer(line))
	c.SetSeed(11)
	return c
}

var _ = Describe("BatchRenderer", func() {
	It("allocates drawable channels with defaults", func() {
		c := lineController("c", nil, 1, 4)
		Expect(c.Init()).To(Succeed())
		Expect(channels.Get(c.Particles, channels.Color).Data).To(HaveEach(float32(1)))
		Expect(channels.Get(c.Particles, channels.Scale).Data).To(HaveEach(float32(1)))
		rot := channels.Get(c.Particles, channels.Rotation3D)
		Expect(rot.Row(3)).To(Equal([]float32{0, 0, 0, 1}))
		Expect(channels.Get(c.Particles, channels.TextureRegion).Row(0)).To(Equal([]float32{0, 0, 1, 1, 0.5, 0.5}))
	})
})

var _ = Describe("BufferedBatch", func() {
	var (
		batch *render.BufferedBatch
		sys   *particles.System
		near  *particles.Controller
		far   *particles.Controller
	)

	BeforeEach(func() {
		batch = render.NewBufferedBatch(sorter.NewDistance())
		batch.SetCamera(mgl32.LookAtV(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, vmath.UnitY))
		near = lineController("near", batch, 50, 5)
		far = lineController("far", batch, -50, 3)

		sys = particles.NewSystem()
		sys.AddBatch(batch)
		fx := particles.NewEffect("fx", near, far)
		Expect(fx.Init()).To(Succeed())
		fx.Start()
		Expect(sys.Add(fx)).To(Succeed())
		sys.Update(0.01)
	})

	It("merges every submitted controller", func() {
		sys.Draw()
		Expect(batch.Len()).To(Equal(8))
	})

	It("writes vertices back to front", func() {
		sys.Draw()
		for i := 1; i < batch.Len(); i++ {
			Expect(batch.Vertices[i].Position.Z()).To(BeNumerically(">=", batch.Vertices[i-1].Position.Z()))
		}
		Expect(batch.Vertices[0].Position.Z()).To(BeNumerically("<=", 0))
		Expect(batch.Vertices[batch.Len()-1].Position.Z()).To(BeNumerically(">=", 0))
	})

	It("copies the particle attributes", func() {
		color := channels.Get(near.Particles, channels.Color)
		color.Fill(0, near.Particles.Size(), 0.25, 0.5, 0.75, 1)
		sys.Draw()
		tinted := 0
		for _, v := range batch.Vertices {
			if v.Color == [4]float32{0.25, 0.5, 0.75, 1} {
				tinted++
				Expect(v.Position.Z()).To(BeNumerically(">=", 0))
			}
			Expect(v.Scale).To(Equal(float32(1)))
			Expect(v.Rotation).To(Equal(mgl32.QuatIdent()))
		}
		Expect(tinted).To(Equal(5))
	})

	It("keeps submission order without a sorter", func() {
		plain := render.NewBufferedBatch(nil)
		plain.Begin()
		near.Renderer.(*render.BatchRenderer).Batch = plain
		near.Draw()
		plain.End()
		pos := channels.Get(near.Particles, channels.Position)
		for i := 0; i < plain.Len(); i++ {
			Expect(plain.Vertices[i].Position).To(Equal(vmath.Load3(pos.Data, i*3)))
		}
	})

	It("starts empty every frame", func() {
		sys.Draw()
		near.End()
		far.End()
		sys.Draw()
		Expect(batch.Len()).To(BeZero())
	})
})

var _ = Describe("NestedRenderer", func() {
	It("requires nested controllers", func() {
		c := particles.NewController("p", particles.NewRegularEmitter(), render.NewNestedRenderer())
		Expect(c.Init()).To(MatchError(particles.ErrChannelNotFound))
	})

	It("draws each live nested controller", func() {
		batch := render.NewBufferedBatch(nil)
		child := lineController("child", batch, 0, 2)

		e := particles.NewRegularEmitter()
		e.MaxParticles, e.MinParticles = 3, 3
		e.Life.SetLow(1000)
		e.Life.SetHigh(1000)
		parent := particles.NewController("parent", e, render.NewNestedRenderer(),
			particles.NewSpawnInfluencer(nil),
			particles.NewControllerSingle(child),
			particles.NewControllerFinalizer())
		Expect(parent.Init()).To(Succeed())
		parent.Start()
		parent.Update(0.01)

		batch.Begin()
		parent.Draw()
		batch.End()
		Expect(batch.Len()).To(Equal(6))
	})
})
