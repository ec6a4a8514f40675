package particles

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/vmath"
)

var _ = Describe("ControllerRandom", func() {
	var (
		copies, disposed int
		random           *ControllerRandom
		parent           *Controller
	)

	BeforeEach(func() {
		copies, disposed = 0, 0
		random = NewControllerRandom(NewController("child", newCountingEmitter(&copies, &disposed), nil))
		parent = NewController("parent", newQuietEmitter(4, 1000), nil, NewSpawnInfluencer(nil), random, NewControllerFinalizer())
		parent.SetSeed(7)
		Expect(parent.Init()).To(Succeed())
		parent.Start()
	})

	It("fills the pool up to the particle capacity", func() {
		Expect(random.Pooled()).To(Equal(4))
		Expect(copies).To(Equal(4))
	})

	It("binds a distinct instance to every live slot", func() {
		activate(GinkgoT(), parent, 3)
		kids := channels.Get(parent.Particles, ControllerChannel)
		seen := map[*Controller]bool{}
		for _, k := range kids.Data[:3] {
			Expect(k).NotTo(BeNil())
			Expect(seen).NotTo(HaveKey(k))
			seen[k] = true
		}
		Expect(random.Pooled()).To(Equal(1))
	})

	It("returns instances on kill and reuses them", func() {
		activate(GinkgoT(), parent, 2)
		kids := channels.Get(parent.Particles, ControllerChannel)
		first := kids.Data[0]

		parent.Particles.RemoveElement(0)
		parent.KillParticles(parent.Particles.Size(), 1)
		Expect(kids.Data[1]).To(BeNil())
		Expect(random.Pooled()).To(Equal(3))

		activate(GinkgoT(), parent, 1)
		Expect(kids.Data[1]).To(BeIdenticalTo(first))
		Expect(kids.Data[0]).NotTo(BeIdenticalTo(kids.Data[1]))
		Expect(copies).To(Equal(4))
	})

	It("releases live instances when the run ends", func() {
		activate(GinkgoT(), parent, 4)
		Expect(random.Pooled()).To(Equal(0))
		parent.End()
		Expect(random.Pooled()).To(Equal(4))
	})

	It("disposes every instance exactly once", func() {
		activate(GinkgoT(), parent, 2)
		parent.Dispose()
		Expect(disposed).To(Equal(copies))
	})

	It("drops pooled instances on re-init", func() {
		Expect(parent.Init()).To(Succeed())
		Expect(disposed).To(Equal(4))
		Expect(copies).To(Equal(8))
		Expect(random.Pooled()).To(Equal(4))
	})
})

var _ = Describe("ControllerSingle", func() {
	It("drives nested controllers from the parent particles", func() {
		childEmitter := newQuietEmitter(3, 1e6)
		childEmitter.MinParticles = 3
		child := NewController("child", childEmitter, nil, NewSpawnInfluencer(nil))

		parent := NewController("parent", newQuietEmitter(2, 1e6), nil,
			NewSpawnInfluencer(nil), NewControllerSingle(child), NewControllerFinalizer())
		parent.SetTRS(mgl32.Vec3{4, 0, 0}, mgl32.QuatIdent(), 1)
		Expect(parent.Init()).To(Succeed())
		parent.Start()
		activate(GinkgoT(), parent, 2)

		parent.Update(0.1)
		parent.Update(0.1)

		kids := channels.Get(parent.Particles, ControllerChannel)
		for _, k := range kids.Data[:2] {
			Expect(vmath.Translation(k.Transform)).To(Equal(mgl32.Vec3{4, 0, 0}))
			Expect(k.Particles.Size()).To(Equal(3))
			Expect(position(k, 2)).To(Equal(mgl32.Vec3{4, 0, 0}))
		}

		parent.Particles.RemoveElement(1)
		parent.KillParticles(1, 1)
		Expect(kids.Data[1].Particles.Size()).To(BeZero())
	})

	It("ends nested controllers when the parent ends", func() {
		childEmitter := newQuietEmitter(3, 1e6)
		childEmitter.MinParticles = 3
		child := NewController("child", childEmitter, nil, NewSpawnInfluencer(nil))

		parent := NewController("parent", newQuietEmitter(2, 1e6), nil,
			NewSpawnInfluencer(nil), NewControllerSingle(child), NewControllerFinalizer())
		Expect(parent.Init()).To(Succeed())
		parent.Start()
		activate(GinkgoT(), parent, 2)
		parent.Update(0.1)
		parent.Update(0.1)

		kids := channels.Get(parent.Particles, ControllerChannel)
		for _, k := range kids.Data[:2] {
			Expect(k.Particles.Size()).To(Equal(3))
		}

		parent.End()
		Expect(parent.Particles.Size()).To(BeZero())
		for _, k := range kids.Data[:2] {
			Expect(k.Particles.Size()).To(BeZero())
		}
	})

	It("gives every slot its own copy", func() {
		parent := NewController("parent", newQuietEmitter(5, 1000), nil,
			NewControllerSingle(NewController("child", newQuietEmitter(1, 1000), nil)))
		Expect(parent.Init()).To(Succeed())
		kids := channels.Get(parent.Particles, ControllerChannel)
		Expect(kids.Data).To(HaveLen(5))
		for i := 1; i < 5; i++ {
			Expect(kids.Data[i]).NotTo(BeIdenticalTo(kids.Data[0]))
			Expect(kids.Data[i].Particles).NotTo(BeIdenticalTo(kids.Data[0].Particles))
		}
	})
})

type fakeModel struct {
	name      string
	made      *int
	disposals *int
}

func (m fakeModel) Name() string { return m.name }

func (m fakeModel) Instantiate() ModelInstance {
	*m.made++
	return &fakeInstance{disposals: m.disposals}
}

type fakeInstance struct {
	transform mgl32.Mat4
	color     [4]float32
	disposals *int
}

func (f *fakeInstance) SetTransform(m mgl32.Mat4)   { f.transform = m }
func (f *fakeInstance) SetColor(r, g, b, a float32) { f.color = [4]float32{r, g, b, a} }
func (f *fakeInstance) Dispose()                    { *f.disposals++ }

var _ = Describe("Model stages", func() {
	var made, disposals int

	BeforeEach(func() { made, disposals = 0, 0 })

	It("places and tints pooled instances", func() {
		model := fakeModel{name: "cube", made: &made, disposals: &disposals}
		parent := NewController("models", newQuietEmitter(3, 1000), nil,
			NewSpawnInfluencer(nil), NewColorRandom(), NewModelRandom(model), NewModelFinalizer())
		parent.SetTRS(mgl32.Vec3{0, 2, 0}, mgl32.QuatIdent(), 1)
		Expect(parent.Init()).To(Succeed())
		parent.Start()
		activate(GinkgoT(), parent, 2)
		parent.Update(0.01)

		insts := channels.Get(parent.Particles, ModelChannel)
		color := channels.Get(parent.Particles, channels.Color)
		for i := 0; i < 2; i++ {
			f := insts.Data[i].(*fakeInstance)
			Expect(vmath.Translation(f.transform)).To(Equal(mgl32.Vec3{0, 2, 0}))
			Expect(f.color[:]).To(Equal(color.Row(i)))
		}

		parent.End()
		parent.Dispose()
		Expect(disposals).To(Equal(made))
	})

	It("fills every slot for the single variant", func() {
		model := fakeModel{name: "cube", made: &made, disposals: &disposals}
		parent := NewController("models", newQuietEmitter(3, 1000), nil, NewModelSingle(model))
		Expect(parent.Init()).To(Succeed())
		Expect(made).To(Equal(3))
		parent.Dispose()
		Expect(disposals).To(Equal(3))
	})

	It("requires a model stage before the finalizer", func() {
		parent := NewController("models", newQuietEmitter(1, 1000), nil, NewModelFinalizer())
		Expect(parent.Init()).To(MatchError(ErrChannelNotFound))
	})
})
