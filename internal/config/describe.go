package config

import (
	"fmt"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/values"
)

// Describe converts an effect back into its file form. Building the result
// with a catalog that knows the referenced regions and templates yields an
// equivalent effect.
func Describe(e *particles.Effect) (*EffectFile, error) {
	f := &EffectFile{Name: e.Name}
	for _, c := range e.Controllers {
		cs, err := describeController(c)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", c.Name, err)
		}
		f.Controllers = append(f.Controllers, cs)
	}
	return f, nil
}

func describeController(c *particles.Controller) (ControllerSpec, error) {
	cs := ControllerSpec{Name: c.Name}
	e, ok := c.Emitter.(*particles.RegularEmitter)
	if !ok {
		return cs, fmt.Errorf("%w: emitter %T", ErrUnknownInfluencer, c.Emitter)
	}
	cs.Emitter = EmitterSpec{
		MinParticles: e.MinParticles,
		MaxParticles: e.MaxParticles,
		Continuous:   e.Continuous,
		Mode:         e.Mode,
		Delay:        e.Delay,
		Duration:     e.Duration,
		Emission:     e.Emission.Clone(),
		Life:         e.Life.Clone(),
		LifeOffset:   e.LifeOffset.Clone(),
	}

	for _, inf := range c.Influencers {
		is, err := describeInfluencer(inf)
		if err != nil {
			return cs, err
		}
		cs.Influencers = append(cs.Influencers, is)
	}

	switch r := c.Renderer.(type) {
	case nil:
		cs.Renderer = "none"
	case *render.BatchRenderer:
	case *render.NestedRenderer:
		cs.Renderer = "nested"
	default:
		return cs, fmt.Errorf("%w: renderer %T", ErrUnknownInfluencer, r)
	}
	return cs, nil
}

func describeInfluencer(inf particles.Influencer) (InfluencerSpec, error) {
	switch v := inf.(type) {
	case *particles.SpawnInfluencer:
		shape, err := describeShape(v.Shape)
		if err != nil {
			return InfluencerSpec{}, err
		}
		return InfluencerSpec{Type: TypeSpawn, Spec: &SpawnSpec{Shape: shape}}, nil
	case *particles.ScaleInfluencer:
		return InfluencerSpec{Type: TypeScale, Spec: &ScaleSpec{Value: v.Value.Clone()}}, nil
	case *particles.ColorRandom:
		return InfluencerSpec{Type: TypeColorRandom, Spec: &emptySpec{}}, nil
	case *particles.ColorSingle:
		alpha := v.Alpha.Clone()
		return InfluencerSpec{Type: TypeColorSingle, Spec: &ColorSpec{Gradient: v.Gradient.Clone(), Alpha: &alpha}}, nil
	case *particles.RegionSingle:
		return InfluencerSpec{Type: TypeRegionSingle, Spec: &RegionSpec{Regions: regionNames(v.Regions)}}, nil
	case *particles.RegionRandom:
		return InfluencerSpec{Type: TypeRegionRandom, Spec: &RegionSpec{Regions: regionNames(v.Regions)}}, nil
	case *particles.RegionAnimated:
		return InfluencerSpec{Type: TypeRegionAnimated, Spec: &RegionSpec{Regions: regionNames(v.Regions)}}, nil
	case *particles.DynamicsInfluencer:
		spec := &DynamicsSpec{}
		for _, m := range v.Modifiers {
			ms, err := describeModifier(m)
			if err != nil {
				return InfluencerSpec{}, err
			}
			spec.Modifiers = append(spec.Modifiers, ms)
		}
		return InfluencerSpec{Type: TypeDynamics, Spec: spec}, nil
	case *particles.ControllerSingle:
		return InfluencerSpec{Type: TypeControllerSingle, Spec: &NestedSpec{Templates: templateNames(v.Templates)}}, nil
	case *particles.ControllerRandom:
		return InfluencerSpec{Type: TypeControllerRandom, Spec: &NestedSpec{Templates: templateNames(v.Templates)}}, nil
	case *particles.ControllerFinalizer:
		return InfluencerSpec{Type: TypeControllerFinalizer, Spec: &emptySpec{}}, nil
	}
	return InfluencerSpec{}, fmt.Errorf("%w: %T", ErrUnknownInfluencer, inf)
}

func describeShape(s values.SpawnShape) (ShapeSpec, error) {
	switch v := s.(type) {
	case *values.Point:
		return ShapeSpec{Kind: "point", Primitive: v.Primitive}, nil
	case *values.Line:
		return ShapeSpec{Kind: "line", Primitive: v.Primitive}, nil
	case *values.Rectangle:
		return ShapeSpec{Kind: "rectangle", Primitive: v.Primitive}, nil
	case *values.Ellipse:
		return ShapeSpec{Kind: "ellipse", Primitive: v.Primitive, Side: v.Side}, nil
	case *values.Cylinder:
		return ShapeSpec{Kind: "cylinder", Primitive: v.Primitive}, nil
	}
	return ShapeSpec{}, fmt.Errorf("%w: %T", ErrUnknownShape, s)
}

func scaledPtr(v values.Scaled) *values.Scaled {
	c := v.Clone()
	return &c
}

func describeModifier(m particles.DynamicsModifier) (ModifierSpec, error) {
	switch v := m.(type) {
	case *particles.Rotational2D:
		return ModifierSpec{Type: ModRotational2D, Global: v.Global, Strength: scaledPtr(v.Strength)}, nil
	case *particles.Rotational3D:
		return ModifierSpec{Type: ModRotational3D, Global: v.Global, Strength: scaledPtr(v.Strength), Theta: scaledPtr(v.Theta), Phi: scaledPtr(v.Phi)}, nil
	case *particles.CentripetalAcceleration:
		return ModifierSpec{Type: ModCentripetal, Global: v.Global, Strength: scaledPtr(v.Strength)}, nil
	case *particles.PolarAcceleration:
		return ModifierSpec{Type: ModPolar, Global: v.Global, Strength: scaledPtr(v.Strength), Theta: scaledPtr(v.Theta), Phi: scaledPtr(v.Phi)}, nil
	case *particles.TangentialAcceleration:
		return ModifierSpec{Type: ModTangential, Global: v.Global, Strength: scaledPtr(v.Strength), Theta: scaledPtr(v.Theta), Phi: scaledPtr(v.Phi)}, nil
	case *particles.BrownianAcceleration:
		return ModifierSpec{Type: ModBrownian, Global: v.Global, Strength: scaledPtr(v.Strength)}, nil
	case *particles.FaceDirection:
		return ModifierSpec{Type: ModFaceDir, Global: v.Global}, nil
	}
	return ModifierSpec{}, fmt.Errorf("%w: modifier %T", ErrUnknownInfluencer, m)
}

func regionNames(rs []values.Region) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func templateNames(cs []*particles.Controller) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
