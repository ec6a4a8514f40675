package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
)

// EmissionMode controls what happens when an emission cycle ends.
type EmissionMode string

const (
	// EmissionEnabled keeps emitting and, for continuous emitters, restarts the cycle.
	EmissionEnabled EmissionMode = "enabled"
	// EmissionUntilCycleEnd stops emitting once the current cycle ends.
	EmissionUntilCycleEnd EmissionMode = "until_cycle_end"
	// EmissionDisabled never emits.
	EmissionDisabled EmissionMode = "disabled"
)

// RegularEmitter emits at a time-varying rate over a cycle of Duration
// milliseconds and owns the life channel. Life values are in milliseconds.
type RegularEmitter struct {
	ComponentBase

	MinParticles int
	MaxParticles int
	Continuous   bool
	Mode         EmissionMode

	Delay      values.Ranged
	Duration   values.Ranged
	Emission   values.Scaled
	Life       values.Scaled
	LifeOffset values.Scaled

	life *channels.Channel[float32]

	percent                 float32
	delay, delayTimer       float32
	duration, durationTimer float32
	emission, emissionDiff  float32
	emissionDelta           float32
	lifeStart, lifeDiff     float32
	lifeOffset, offsetDiff  float32
}

// NewRegularEmitter returns a continuous emitter with a one second cycle.
func NewRegularEmitter() *RegularEmitter {
	e := &RegularEmitter{
		MaxParticles: 4,
		Continuous:   true,
		Mode:         EmissionEnabled,
		Duration:     values.NewRanged(1000, 1000),
		Emission:     values.NewScaled(),
		Life:         values.NewScaled(),
		LifeOffset:   values.NewScaled(),
	}
	e.LifeOffset.Active = false
	return e
}

func (e *RegularEmitter) MaxParticleCount() int { return e.MaxParticles }
func (e *RegularEmitter) Percent() float32      { return e.percent }

// LifeChannel returns the life channel (current ms, total ms, percent).
func (e *RegularEmitter) LifeChannel() *channels.Channel[float32] { return e.life }

func (e *RegularEmitter) AllocateChannels() error {
	var err error
	e.life, err = channels.Add(e.controller.Particles, channels.Life)
	return err
}

func (e *RegularEmitter) Start() {
	rng := e.controller.Rand()
	e.delay = 0
	if e.Delay.Active {
		e.delay = e.Delay.NewLowValue(rng)
	}
	e.delayTimer = 0
	e.durationTimer = 0
	e.duration = e.Duration.NewLowValue(rng)
	e.percent = 0
	if e.duration > 0 {
		e.percent = e.durationTimer / e.duration
	}

	e.emission, e.emissionDiff = e.Emission.StartDiff(rng)
	e.lifeStart, e.lifeDiff = e.Life.StartDiff(rng)
	e.lifeOffset, e.offsetDiff = 0, 0
	if e.LifeOffset.Active {
		e.lifeOffset, e.offsetDiff = e.LifeOffset.StartDiff(rng)
	}
}

// End discards every live particle.
func (e *RegularEmitter) End() {
	e.percent = 0
	e.emissionDelta = 0
	if e.controller.Particles != nil {
		for e.controller.Particles.Size() > 0 {
			e.controller.Particles.RemoveElement(e.controller.Particles.Size() - 1)
		}
	}
}

func (e *RegularEmitter) ActivateParticles(start, count int) {
	total := e.lifeStart + e.lifeDiff*e.Life.Scale(e.percent)
	current := total
	offset := e.lifeOffset + e.offsetDiff*e.LifeOffset.Scale(e.percent)
	if offset > 0 {
		if offset >= current {
			offset = current - 1
		}
		current -= offset
	}
	percent := float32(0)
	if total > 0 {
		percent = 1 - current/total
	}
	stride := e.life.Stride
	for i, end := start*stride, (start+count)*stride; i < end; i += stride {
		e.life.Data[i+channels.CurrentLifeOffset] = current
		e.life.Data[i+channels.TotalLifeOffset] = total
		e.life.Data[i+channels.LifePercentOffset] = percent
	}
}

func (e *RegularEmitter) Update() {
	c := e.controller
	store := c.Particles
	deltaMillis := c.DeltaTime * 1000

	if e.delayTimer < e.delay {
		e.delayTimer += deltaMillis
	} else {
		emit := e.Mode != EmissionDisabled
		if e.durationTimer < e.duration {
			e.durationTimer += deltaMillis
			e.percent = e.durationTimer / e.duration
		} else if e.Continuous && emit && e.Mode == EmissionEnabled {
			c.Start()
		} else {
			emit = false
		}

		if emit {
			e.emissionDelta += deltaMillis
			rate := e.emission + e.emissionDiff*e.Emission.Scale(e.percent)
			if rate > 0 {
				interval := 1000 / rate
				if e.emissionDelta >= interval {
					count := int(e.emissionDelta / interval)
					count = min(count, e.MaxParticles-store.Size())
					e.emissionDelta -= float32(count) * interval
					e.emissionDelta = mod(e.emissionDelta, interval)
					e.addParticles(count)
				}
			}
			if store.Size() < e.MinParticles {
				e.addParticles(e.MinParticles - store.Size())
			}
		}
	}

	active := store.Size()
	stride := e.life.Stride
	for i, k := 0, 0; i < store.Size(); {
		e.life.Data[k+channels.CurrentLifeOffset] -= deltaMillis
		if e.life.Data[k+channels.CurrentLifeOffset] <= 0 {
			store.RemoveElement(i)
			continue
		}
		e.life.Data[k+channels.LifePercentOffset] = 1 - e.life.Data[k+channels.CurrentLifeOffset]/e.life.Data[k+channels.TotalLifeOffset]
		i++
		k += stride
	}
	if store.Size() < active {
		c.KillParticles(store.Size(), active-store.Size())
	}
}

func (e *RegularEmitter) addParticles(count int) {
	store := e.controller.Particles
	count = min(count, e.MaxParticles-store.Size())
	if count <= 0 {
		return
	}
	e.controller.ActivateParticles(store.Size(), count)
	// Cannot fail: count is clamped to the free capacity above.
	_ = store.Extend(count)
}

func (e *RegularEmitter) IsComplete() bool {
	if e.delayTimer < e.delay {
		return false
	}
	return e.durationTimer >= e.duration && e.controller.Particles.Size() == 0
}

func (e *RegularEmitter) Copy() Emitter {
	cp := *e
	cp.ComponentBase = ComponentBase{}
	cp.life = nil
	cp.Emission = e.Emission.Clone()
	cp.Life = e.Life.Clone()
	cp.LifeOffset = e.LifeOffset.Clone()
	return &cp
}

func mod(x, m float32) float32 {
	if m == 0 {
		return x
	}
	return x - m*float32(int(x/m))
}
