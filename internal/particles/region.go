package particles

import (
	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
)

// regionBase owns the texture region channel shared by the region stages.
type regionBase struct {
	ComponentBase
	Regions []values.Region

	region *channels.Channel[float32]
}

func (r *regionBase) AllocateChannels() error {
	if len(r.Regions) == 0 {
		return ErrNoTemplates
	}
	var err error
	r.region, err = channels.Add(r.controller.Particles, channels.TextureRegion, channels.FullTextureRegion)
	return err
}

func (r *regionBase) write(row int, reg values.Region) {
	d := r.region.Data
	i := row * r.region.Stride
	d[i+channels.UOffset] = reg.U
	d[i+channels.VOffset] = reg.V
	d[i+channels.U2Offset] = reg.U2
	d[i+channels.V2Offset] = reg.V2
	d[i+channels.HalfWidthOffset] = 0.5
	d[i+channels.HalfHeightOffset] = reg.HalfInvAspect()
}

func (r *regionBase) regions() []values.Region {
	return append([]values.Region(nil), r.Regions...)
}

// RegionSingle assigns the first region to every slot once, at Init.
type RegionSingle struct {
	regionBase
}

func NewRegionSingle(regions ...values.Region) *RegionSingle {
	return &RegionSingle{regionBase{Regions: regions}}
}

func (r *RegionSingle) Init() error {
	for i := 0; i < r.controller.Particles.Capacity(); i++ {
		r.write(i, r.Regions[0])
	}
	return nil
}

func (r *RegionSingle) Copy() Influencer { return NewRegionSingle(r.regions()...) }

// RegionRandom draws a region per particle at activation.
type RegionRandom struct {
	regionBase
}

func NewRegionRandom(regions ...values.Region) *RegionRandom {
	return &RegionRandom{regionBase{Regions: regions}}
}

func (r *RegionRandom) ActivateParticles(start, count int) {
	rng := r.controller.Rand()
	for i := start; i < start+count; i++ {
		r.write(i, r.Regions[rng.IntN(len(r.Regions))])
	}
}

func (r *RegionRandom) Copy() Influencer { return NewRegionRandom(r.regions()...) }

// RegionAnimated steps through Regions over each particle's life.
type RegionAnimated struct {
	regionBase
	life *channels.Channel[float32]
}

func NewRegionAnimated(regions ...values.Region) *RegionAnimated {
	return &RegionAnimated{regionBase: regionBase{Regions: regions}}
}

func (r *RegionAnimated) AllocateChannels() error {
	if err := r.regionBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	r.life, err = channels.Add(r.controller.Particles, channels.Life)
	return err
}

func (r *RegionAnimated) Update() {
	last := float32(len(r.Regions) - 1)
	n := r.controller.Particles.Size()
	for i, l := 0, 0; i < n; i, l = i+1, l+r.life.Stride {
		idx := int(r.life.Data[l+channels.LifePercentOffset] * last)
		idx = max(0, min(idx, len(r.Regions)-1))
		r.write(i, r.Regions[idx])
	}
}

func (r *RegionAnimated) Copy() Influencer { return NewRegionAnimated(r.regions()...) }
