package particles

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingBatch struct {
	begins, ends int
	log          *[]string
}

func (b *countingBatch) Begin() { b.begins++; *b.log = append(*b.log, "begin") }
func (b *countingBatch) End()   { b.ends++; *b.log = append(*b.log, "end") }

// drawLogger is a renderer that logs when it is asked to draw.
type drawLogger struct {
	ComponentBase
	log *[]string
}

func (p *drawLogger) Update()        { *p.log = append(*p.log, "draw") }
func (p *drawLogger) Copy() Renderer { return &drawLogger{log: p.log} }

func steadyEffect(name string, seed uint64, r Renderer) *Effect {
	e := NewRegularEmitter()
	e.MaxParticles = 64
	e.Emission.SetLow(120)
	e.Emission.SetHigh(120)
	e.Life.SetLow(300)
	e.Life.SetHigh(600)
	c := NewController(name, e, r, NewSpawnInfluencer(nil), NewScaleInfluencer())
	c.SetSeed(seed)
	return NewEffect(name, c)
}

var _ = Describe("System", func() {
	It("rejects effects that were not initialized", func() {
		sys := NewSystem()
		Expect(sys.Add(steadyEffect("raw", 1, nil))).To(MatchError(ErrNotInitialized))
	})

	It("draws between batch begin and end", func() {
		var log []string
		sys := NewSystem()
		sys.AddBatch(&countingBatch{log: &log})

		fx := steadyEffect("fx", 1, &drawLogger{log: &log})
		Expect(fx.Init()).To(Succeed())
		fx.Start()
		Expect(sys.Add(fx)).To(Succeed())

		sys.Update(0.1)
		sys.Draw()
		Expect(log).To(Equal([]string{"begin", "draw", "end"}))
	})

	It("updates in parallel with the same result as in sequence", func() {
		seq, par := NewSystem(), NewSystem()
		for i := 0; i < 8; i++ {
			a, b := steadyEffect("a", uint64(i), nil), steadyEffect("b", uint64(i), nil)
			Expect(a.Init()).To(Succeed())
			Expect(b.Init()).To(Succeed())
			a.Start()
			b.Start()
			Expect(seq.Add(a)).To(Succeed())
			Expect(par.Add(b)).To(Succeed())
		}
		for frame := 0; frame < 30; frame++ {
			seq.Update(1.0 / 30)
			par.UpdateParallel(1.0 / 30)
		}
		for i := range seq.Effects() {
			Expect(par.Effects()[i].Alive()).To(Equal(seq.Effects()[i].Alive()))
		}
	})

	It("removes effects without disposing them", func() {
		sys := NewSystem()
		fx := steadyEffect("fx", 1, nil)
		Expect(fx.Init()).To(Succeed())
		Expect(sys.Add(fx)).To(Succeed())
		Expect(sys.Remove(fx)).To(BeTrue())
		Expect(sys.Remove(fx)).To(BeFalse())
		Expect(sys.Effects()).To(BeEmpty())
		Expect(fx.Initialized()).To(BeTrue())
	})
})

var _ = Describe("Effect", func() {
	It("moves every controller and merges their bounds", func() {
		a := steadyEffect("a", 3, nil).Controllers[0]
		b := steadyEffect("b", 4, nil).Controllers[0]
		fx := NewEffect("pair", a, b)
		fx.Translate(mgl32.Vec3{1, 0, 0})
		Expect(fx.Init()).To(Succeed())
		fx.Start()
		fx.Update(0.1)

		Expect(fx.FindController("b")).To(BeIdenticalTo(b))
		Expect(fx.FindController("zzz")).To(BeNil())
		lo, hi, ok := fx.BoundingBox()
		Expect(ok).To(BeTrue())
		Expect(lo).To(Equal(mgl32.Vec3{1, 0, 0}))
		Expect(hi).To(Equal(mgl32.Vec3{1, 0, 0}))
		Expect(fx.Alive()).To(Equal(a.Particles.Size() + b.Particles.Size()))
	})

	It("copies into an independent uninitialized effect", func() {
		fx := steadyEffect("fx", 5, nil)
		cp := fx.Copy()
		Expect(cp.Controllers).To(HaveLen(1))
		Expect(cp.Controllers[0]).NotTo(BeIdenticalTo(fx.Controllers[0]))
		Expect(cp.Initialized()).To(BeFalse())
	})
})
