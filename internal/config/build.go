package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/values"
)

// Builder turns effect files into uninitialized effects. Renderers of kind
// "batch" submit to Batch, which may be nil for headless runs.
type Builder struct {
	Catalog *Catalog
	Batch   render.Batch
	Logger  *log.Logger
}

func NewBuilder(cat *Catalog, batch render.Batch, logger *log.Logger) *Builder {
	if cat == nil {
		cat = DefaultCatalog()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Catalog: cat, Batch: batch, Logger: logger}
}

func (b *Builder) Build(f *EffectFile) (*particles.Effect, error) {
	return b.build(f, nil)
}

func (b *Builder) build(f *EffectFile, stack []string) (*particles.Effect, error) {
	if slices.Contains(stack, f.Name) {
		return nil, fmt.Errorf("%w: %v -> %s", ErrTemplateCycle, stack, f.Name)
	}
	stack = append(stack, f.Name)

	e := particles.NewEffect(f.Name)
	for i, cs := range f.Controllers {
		c, err := b.controller(cs, stack)
		if err != nil {
			return nil, fmt.Errorf("effect %q controller %d: %w", f.Name, i, err)
		}
		e.Controllers = append(e.Controllers, c)
	}
	b.Logger.Debug("built effect", "effect", f.Name, "controllers", len(e.Controllers))
	return e, nil
}

func (b *Builder) controller(cs ControllerSpec, stack []string) (*particles.Controller, error) {
	infs := make([]particles.Influencer, 0, len(cs.Influencers))
	for _, is := range cs.Influencers {
		inf, err := b.influencer(is, stack)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", is.Type, err)
		}
		infs = append(infs, inf)
	}

	var r particles.Renderer
	switch cs.Renderer {
	case "", "batch":
		r = render.NewBatchRenderer(b.Batch)
	case "nested":
		r = render.NewNestedRenderer()
	case "none":
	default:
		return nil, fmt.Errorf("%w: renderer %q", ErrUnknownInfluencer, cs.Renderer)
	}
	e, err := buildEmitter(cs.Emitter)
	if err != nil {
		return nil, fmt.Errorf("emitter: %w", err)
	}
	return particles.NewController(cs.Name, e, r, infs...), nil
}

// curve validates v and names it in the error.
func curve(name string, v *values.Scaled) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func buildEmitter(s EmitterSpec) (*particles.RegularEmitter, error) {
	err := errors.Join(
		curve("emission", &s.Emission),
		curve("life", &s.Life),
		curve("life_offset", &s.LifeOffset),
	)
	if err != nil {
		return nil, err
	}
	e := particles.NewRegularEmitter()
	e.MinParticles = s.MinParticles
	if s.MaxParticles > 0 {
		e.MaxParticles = s.MaxParticles
	}
	e.Continuous = s.Continuous
	if s.Mode != "" {
		e.Mode = s.Mode
	}
	e.Delay = s.Delay
	if s.Duration != (values.Ranged{}) {
		e.Duration = s.Duration
	}
	e.Emission = s.Emission.Clone()
	e.Life = s.Life.Clone()
	e.LifeOffset = s.LifeOffset.Clone()
	return e, nil
}

func (b *Builder) influencer(is InfluencerSpec, stack []string) (particles.Influencer, error) {
	switch spec := is.Spec.(type) {
	case *SpawnSpec:
		shape, err := buildShape(spec.Shape)
		if err != nil {
			return nil, err
		}
		return particles.NewSpawnInfluencer(shape), nil
	case *ScaleSpec:
		if err := curve("value", &spec.Value); err != nil {
			return nil, err
		}
		s := particles.NewScaleInfluencer()
		s.Value = spec.Value.Clone()
		return s, nil
	case *ColorSpec:
		c := particles.NewColorSingle()
		if len(spec.Gradient.Timeline) > 0 || len(spec.Gradient.Colors) > 0 {
			if err := spec.Gradient.Validate(); err != nil {
				return nil, fmt.Errorf("gradient: %w", err)
			}
			c.Gradient = spec.Gradient.Clone()
		}
		if spec.Alpha != nil {
			if err := curve("alpha", spec.Alpha); err != nil {
				return nil, err
			}
			c.Alpha = spec.Alpha.Clone()
		}
		return c, nil
	case *RegionSpec:
		regions, err := b.regions(spec.Regions)
		if err != nil {
			return nil, err
		}
		switch is.Type {
		case TypeRegionSingle:
			return particles.NewRegionSingle(regions...), nil
		case TypeRegionRandom:
			return particles.NewRegionRandom(regions...), nil
		default:
			return particles.NewRegionAnimated(regions...), nil
		}
	case *DynamicsSpec:
		mods := make([]particles.DynamicsModifier, 0, len(spec.Modifiers))
		for _, ms := range spec.Modifiers {
			m, err := buildModifier(ms)
			if err != nil {
				return nil, err
			}
			mods = append(mods, m)
		}
		return particles.NewDynamicsInfluencer(mods...), nil
	case *NestedSpec:
		templates, err := b.templates(spec.Templates, stack)
		if err != nil {
			return nil, err
		}
		if is.Type == TypeControllerSingle {
			return particles.NewControllerSingle(templates...), nil
		}
		return particles.NewControllerRandom(templates...), nil
	}

	switch is.Type {
	case TypeColorRandom:
		return particles.NewColorRandom(), nil
	case TypeControllerFinalizer:
		return particles.NewControllerFinalizer(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInfluencer, is.Type)
}

func (b *Builder) regions(names []string) ([]values.Region, error) {
	out := make([]values.Region, 0, len(names))
	for _, n := range names {
		r, err := b.Catalog.Region(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// templates builds the first controller of each named catalog effect. The
// template takes the effect's name so it can be described again.
func (b *Builder) templates(names []string, stack []string) ([]*particles.Controller, error) {
	out := make([]*particles.Controller, 0, len(names))
	for _, n := range names {
		f, err := b.Catalog.Effect(n)
		if err != nil {
			return nil, err
		}
		e, err := b.build(f, stack)
		if err != nil {
			return nil, err
		}
		if len(e.Controllers) == 0 {
			return nil, fmt.Errorf("%w: effect %q has no controllers", ErrAssetNotFound, n)
		}
		t := e.Controllers[0]
		t.Name = n
		out = append(out, t)
	}
	return out, nil
}

func buildShape(s ShapeSpec) (values.SpawnShape, error) {
	p := s.Primitive
	err := errors.Join(curve("width", &p.Width), curve("height", &p.Height), curve("depth", &p.Depth))
	if err != nil {
		return nil, err
	}
	p.Width, p.Height, p.Depth = p.Width.Clone(), p.Height.Clone(), p.Depth.Clone()
	switch s.Kind {
	case "", "point":
		return &values.Point{Primitive: p}, nil
	case "line":
		return &values.Line{Primitive: p}, nil
	case "rectangle":
		return &values.Rectangle{Primitive: p}, nil
	case "ellipse":
		side := s.Side
		if side == "" {
			side = values.SideBoth
		}
		return &values.Ellipse{Primitive: p, Side: side}, nil
	case "cylinder":
		return &values.Cylinder{Primitive: p}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Kind)
}

func scaledOr(v *values.Scaled) values.Scaled {
	if v == nil {
		return values.NewScaled()
	}
	return v.Clone()
}

func buildModifier(s ModifierSpec) (particles.DynamicsModifier, error) {
	for _, c := range []struct {
		name string
		v    *values.Scaled
	}{{"strength", s.Strength}, {"theta", s.Theta}, {"phi", s.Phi}} {
		if c.v == nil {
			continue
		}
		if err := curve(c.name, c.v); err != nil {
			return nil, fmt.Errorf("modifier %q %w", s.Type, err)
		}
	}
	switch s.Type {
	case ModRotational2D:
		m := particles.NewRotational2D()
		m.Global, m.Strength = s.Global, scaledOr(s.Strength)
		return m, nil
	case ModRotational3D:
		m := particles.NewRotational3D()
		m.Global, m.Strength, m.Theta, m.Phi = s.Global, scaledOr(s.Strength), scaledOr(s.Theta), scaledOr(s.Phi)
		return m, nil
	case ModCentripetal:
		m := particles.NewCentripetalAcceleration()
		m.Global, m.Strength = s.Global, scaledOr(s.Strength)
		return m, nil
	case ModPolar:
		m := particles.NewPolarAcceleration()
		m.Global, m.Strength, m.Theta, m.Phi = s.Global, scaledOr(s.Strength), scaledOr(s.Theta), scaledOr(s.Phi)
		return m, nil
	case ModTangential:
		m := particles.NewTangentialAcceleration()
		m.Global, m.Strength, m.Theta, m.Phi = s.Global, scaledOr(s.Strength), scaledOr(s.Theta), scaledOr(s.Phi)
		return m, nil
	case ModBrownian:
		m := particles.NewBrownianAcceleration()
		m.Global, m.Strength = s.Global, scaledOr(s.Strength)
		return m, nil
	case ModFaceDir:
		m := particles.NewFaceDirection()
		m.Global = s.Global
		return m, nil
	}
	return nil, fmt.Errorf("%w: modifier %q", ErrUnknownInfluencer, s.Type)
}
