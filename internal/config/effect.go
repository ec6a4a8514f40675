package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/values"
)

// EffectFile is the on-disk form of a particle effect. It holds configuration
// only; live particle data is never persisted.
type EffectFile struct {
	Name        string           `yaml:"name"`
	Controllers []ControllerSpec `yaml:"controllers"`
}

type ControllerSpec struct {
	Name        string           `yaml:"name"`
	Emitter     EmitterSpec      `yaml:"emitter"`
	Influencers []InfluencerSpec `yaml:"influencers"`
	// Renderer is "batch" (the default), "nested" or "none".
	Renderer string `yaml:"renderer,omitempty"`
}

type EmitterSpec struct {
	MinParticles int                    `yaml:"min_particles"`
	MaxParticles int                    `yaml:"max_particles"`
	Continuous   bool                   `yaml:"continuous"`
	Mode         particles.EmissionMode `yaml:"mode"`
	Delay        values.Ranged          `yaml:"delay"`
	Duration     values.Ranged          `yaml:"duration"`
	Emission     values.Scaled          `yaml:"emission"`
	Life         values.Scaled          `yaml:"life"`
	LifeOffset   values.Scaled          `yaml:"life_offset"`
}

// Influencer type tags.
const (
	TypeSpawn               = "spawn"
	TypeScale               = "scale"
	TypeColorRandom         = "color_random"
	TypeColorSingle         = "color_single"
	TypeRegionSingle        = "region_single"
	TypeRegionRandom        = "region_random"
	TypeRegionAnimated      = "region_animated"
	TypeDynamics            = "dynamics"
	TypeControllerSingle    = "controller_single"
	TypeControllerRandom    = "controller_random"
	TypeControllerFinalizer = "controller_finalizer"
)

// Dynamics modifier type tags.
const (
	ModRotational2D = "rotational_2d"
	ModRotational3D = "rotational_3d"
	ModCentripetal  = "centripetal"
	ModPolar        = "polar"
	ModTangential   = "tangential"
	ModBrownian     = "brownian"
	ModFaceDir      = "face_direction"
)

// InfluencerSpec is one entry of a controller's influencer list, tagged by
// type. Spec holds the type's settings struct.
type InfluencerSpec struct {
	Type string
	Spec any
}

type SpawnSpec struct {
	Shape ShapeSpec `yaml:"shape"`
}

// ShapeSpec selects a spawn shape by Kind: point, line, rectangle, ellipse or cylinder.
type ShapeSpec struct {
	values.Primitive `yaml:",inline"`

	Kind string      `yaml:"kind"`
	Side values.Side `yaml:"side,omitempty"`
}

type ScaleSpec struct {
	Value values.Scaled `yaml:"value"`
}

type ColorSpec struct {
	Gradient values.Gradient `yaml:"gradient"`
	Alpha    *values.Scaled  `yaml:"alpha,omitempty"`
}

// RegionSpec names catalog regions.
type RegionSpec struct {
	Regions []string `yaml:"regions"`
}

type DynamicsSpec struct {
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

type ModifierSpec struct {
	Type     string         `yaml:"type"`
	Global   bool           `yaml:"global,omitempty"`
	Strength *values.Scaled `yaml:"strength,omitempty"`
	Theta    *values.Scaled `yaml:"theta,omitempty"`
	Phi      *values.Scaled `yaml:"phi,omitempty"`
}

// NestedSpec names catalog effects whose first controller serves as a template.
type NestedSpec struct {
	Templates []string `yaml:"templates"`
}

type emptySpec struct{}

func newSpec(typ string) (any, error) {
	switch typ {
	case TypeSpawn:
		return &SpawnSpec{}, nil
	case TypeScale:
		return &ScaleSpec{}, nil
	case TypeColorSingle:
		return &ColorSpec{}, nil
	case TypeRegionSingle, TypeRegionRandom, TypeRegionAnimated:
		return &RegionSpec{}, nil
	case TypeDynamics:
		return &DynamicsSpec{}, nil
	case TypeControllerSingle, TypeControllerRandom:
		return &NestedSpec{}, nil
	case TypeColorRandom, TypeControllerFinalizer:
		return &emptySpec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInfluencer, typ)
}

func (s *InfluencerSpec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	spec, err := newSpec(head.Type)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if err := node.Decode(spec); err != nil {
		return err
	}
	s.Type, s.Spec = head.Type, spec
	return nil
}

func (s InfluencerSpec) MarshalYAML() (any, error) {
	node := &yaml.Node{}
	spec := s.Spec
	if spec == nil {
		spec = emptySpec{}
	}
	if err := node.Encode(spec); err != nil {
		return nil, err
	}
	tag := []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "type"},
		{Kind: yaml.ScalarNode, Value: s.Type},
	}
	node.Content = append(tag, node.Content...)
	return node, nil
}

// LoadEffect reads an effect file.
func LoadEffect(path string) (*EffectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEffect(data)
}

func ParseEffect(data []byte) (*EffectFile, error) {
	f := &EffectFile{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse effect: %w", err)
	}
	return f, nil
}

func SaveEffect(path string, f *EffectFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
