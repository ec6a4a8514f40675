package config

import (
	"fmt"
	"slices"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/values"
)

// scaled returns an absolute value starting at lo and reaching hi where the
// curve reaches 1. curve lists (time, scale) pairs; without it the scale is
// constant 1 and the value is hi throughout.
func scaled(lo, hi float32, curve ...float32) values.Scaled {
	v := values.NewScaled()
	v.SetLow(lo)
	v.SetHigh(hi)
	if len(curve) >= 2 {
		v.Timeline, v.Scaling = nil, nil
		for i := 0; i+1 < len(curve); i += 2 {
			v.Timeline = append(v.Timeline, curve[i])
			v.Scaling = append(v.Scaling, curve[i+1])
		}
	}
	return v
}

func scaledRange(lowMin, lowMax, highMin, highMax float32, curve ...float32) values.Scaled {
	v := scaled(0, 0, curve...)
	v.LowMin, v.LowMax = lowMin, lowMax
	v.SetHighRange(highMin, highMax)
	return v
}

func ptr(v values.Scaled) *values.Scaled { return &v }

func gravity(g float32) ModifierSpec {
	return ModifierSpec{Type: ModPolar, Global: true, Strength: ptr(scaled(g, g)), Phi: ptr(scaled(180, 180))}
}

func emitter(max int, rate, lifeMin, lifeMax float32) EmitterSpec {
	return EmitterSpec{
		MaxParticles: max,
		Continuous:   true,
		Mode:         particles.EmissionEnabled,
		Duration:     values.NewRanged(1000, 1000),
		Emission:     scaled(rate, rate),
		Life:         scaledRange(lifeMin, lifeMax, lifeMin, lifeMax),
		LifeOffset:   values.NewScaled(),
	}
}

func spawn(kind string, w, h, d float32) InfluencerSpec {
	p := values.NewPrimitive()
	p.Width, p.Height, p.Depth = scaled(w, w), scaled(h, h), scaled(d, d)
	return InfluencerSpec{Type: TypeSpawn, Spec: &SpawnSpec{Shape: ShapeSpec{Kind: kind, Primitive: p}}}
}

func fountain() *EffectFile {
	e := emitter(400, 120, 1800, 2600)
	return &EffectFile{Name: "fountain", Controllers: []ControllerSpec{{
		Name:    "jet",
		Emitter: e,
		Influencers: []InfluencerSpec{
			spawn("ellipse", 1, 0, 1),
			{Type: TypeScale, Spec: &ScaleSpec{Value: scaled(1, 0.4, 0, 0, 1, 1)}},
			{Type: TypeColorSingle, Spec: &ColorSpec{
				Gradient: values.Gradient{Colors: []float32{0.3, 0.6, 1, 0.9, 0.95, 1}, Timeline: []float32{0, 1}},
				Alpha:    ptr(scaled(1, 0, 0, 0, 0.7, 0, 1, 1)),
			}},
			{Type: TypeDynamics, Spec: &DynamicsSpec{Modifiers: []ModifierSpec{
				{Type: ModPolar, Global: true, Strength: ptr(scaledRange(0, 0, 260, 320, 0, 1, 0.08, 0)), Phi: ptr(scaledRange(0, 12, 0, 12)), Theta: ptr(scaledRange(0, 360, 0, 360))},
				gravity(9.8),
			}}},
		},
	}}}
}

func sparks() *EffectFile {
	e := emitter(160, 600, 500, 1100)
	e.Continuous = false
	e.Duration = values.NewRanged(250, 250)
	return &EffectFile{Name: "sparks", Controllers: []ControllerSpec{{
		Name:    "burst",
		Emitter: e,
		Influencers: []InfluencerSpec{
			spawn("point", 0, 0, 0),
			{Type: TypeRegionRandom, Spec: &RegionSpec{Regions: []string{"spark1", "spark2"}}},
			{Type: TypeColorSingle, Spec: &ColorSpec{
				Gradient: values.Gradient{Colors: []float32{1, 0.95, 0.5, 1, 0.35, 0.1}, Timeline: []float32{0, 1}},
				Alpha:    ptr(scaled(1, 0, 0, 0, 1, 1)),
			}},
			{Type: TypeScale, Spec: &ScaleSpec{Value: scaled(0.6, 0.1, 0, 0, 1, 1)}},
			{Type: TypeDynamics, Spec: &DynamicsSpec{Modifiers: []ModifierSpec{
				{Type: ModPolar, Strength: ptr(scaledRange(0, 0, 400, 700, 0, 1, 0.12, 0)), Theta: ptr(scaledRange(0, 360, 0, 360)), Phi: ptr(scaledRange(0, 180, 0, 180))},
				{Type: ModBrownian, Strength: ptr(scaled(4, 4))},
				gravity(6),
				{Type: ModFaceDir},
			}}},
		},
	}}}
}

func smoke() *EffectFile {
	e := emitter(200, 25, 3000, 4200)
	return &EffectFile{Name: "smoke", Controllers: []ControllerSpec{{
		Name:    "plume",
		Emitter: e,
		Influencers: []InfluencerSpec{
			spawn("ellipse", 3, 0.5, 3),
			{Type: TypeRegionAnimated, Spec: &RegionSpec{Regions: []string{"smoke0", "smoke1", "smoke2", "smoke3"}}},
			{Type: TypeColorSingle, Spec: &ColorSpec{
				Gradient: values.Gradient{Colors: []float32{0.55, 0.55, 0.55, 0.25, 0.25, 0.25}, Timeline: []float32{0, 1}},
				Alpha:    ptr(scaled(0, 0.6, 0, 0, 0.2, 1, 1, 0)),
			}},
			{Type: TypeScale, Spec: &ScaleSpec{Value: scaled(0.5, 3, 0, 0, 1, 1)}},
			{Type: TypeDynamics, Spec: &DynamicsSpec{Modifiers: []ModifierSpec{
				{Type: ModPolar, Global: true, Strength: ptr(scaled(2.5, 2.5)), Phi: ptr(scaledRange(0, 15, 0, 15)), Theta: ptr(scaledRange(0, 360, 0, 360))},
				{Type: ModTangential, Global: true, Strength: ptr(scaled(0.8, 0.8)), Phi: ptr(scaled(0, 0))},
				{Type: ModBrownian, Strength: ptr(scaled(1.5, 1.5))},
				{Type: ModRotational2D, Strength: ptr(scaledRange(-40, 40, -40, 40))},
			}}},
		},
	}}}
}

func fireworks() *EffectFile {
	e := emitter(6, 2, 1300, 1600)
	return &EffectFile{Name: "fireworks", Controllers: []ControllerSpec{{
		Name:     "rockets",
		Emitter:  e,
		Renderer: "nested",
		Influencers: []InfluencerSpec{
			spawn("rectangle", 30, 0, 6),
			{Type: TypeDynamics, Spec: &DynamicsSpec{Modifiers: []ModifierSpec{
				{Type: ModPolar, Global: true, Strength: ptr(scaled(0, 40, 0, 1, 0.4, 0)), Phi: ptr(scaledRange(0, 10, 0, 10)), Theta: ptr(scaledRange(0, 360, 0, 360))},
				gravity(9.8),
			}}},
			{Type: TypeControllerRandom, Spec: &NestedSpec{Templates: []string{"sparks"}}},
			{Type: TypeControllerFinalizer, Spec: &emptySpec{}},
		},
	}}}
}

var presets = map[string]func() *EffectFile{
	"fountain":  fountain,
	"sparks":    sparks,
	"smoke":     smoke,
	"fireworks": fireworks,
}

// GetPreset returns a fresh copy of a built-in effect.
func GetPreset(name string) (*EffectFile, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegions are the texture regions the presets reference: a full
// square, two spark halves of a 2x1 atlas and four smoke frames of a 2x2 atlas.
func DefaultRegions() []values.Region {
	return []values.Region{
		values.FullRegion("full"),
		{Name: "spark1", U2: 0.5, V2: 1, Width: 1, Height: 2},
		{Name: "spark2", U: 0.5, U2: 1, V2: 1, Width: 1, Height: 2},
		{Name: "smoke0", U2: 0.5, V2: 0.5, Width: 1, Height: 1},
		{Name: "smoke1", U: 0.5, U2: 1, V2: 0.5, Width: 1, Height: 1},
		{Name: "smoke2", V: 0.5, U2: 0.5, V2: 1, Width: 1, Height: 1},
		{Name: "smoke3", U: 0.5, V: 0.5, U2: 1, V2: 1, Width: 1, Height: 1},
	}
}
