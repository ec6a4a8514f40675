package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEffect   = "fountain"
	DefaultDt       = 1.0 / 60
	DefaultDuration = 5.0
	DefaultFPS      = 30
	DefaultSorter   = "distance"
)

// Config describes one run: which effect, how it is stepped and how the live
// view looks at it.
type Config struct {
	Effect   string       `yaml:"effect"`
	Dt       float64      `yaml:"dt"`
	Duration float64      `yaml:"duration"`
	Seed     uint64       `yaml:"seed"`
	FPS      int          `yaml:"fps"`
	Sorter   string       `yaml:"sorter"`
	Camera   CameraConfig `yaml:"camera"`
}

type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	// FOV is the vertical field of view in degrees.
	FOV float32 `yaml:"fov"`
}

func (c CameraConfig) EyeVec() mgl32.Vec3    { return mgl32.Vec3(c.Eye) }
func (c CameraConfig) TargetVec() mgl32.Vec3 { return mgl32.Vec3(c.Target) }

func DefaultConfig() *Config {
	return &Config{
		Effect:   DefaultEffect,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Sorter:   DefaultSorter,
		Camera: CameraConfig{
			Eye:    [3]float32{0, 15, 60},
			Target: [3]float32{0, 12, 0},
			FOV:    60,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Env holds the settings read from the environment.
type Env struct {
	DataDir  string `env:"PARTSIM_DATA_DIR"  envDefault:"data"`
	LogLevel string `env:"PARTSIM_LOG_LEVEL" envDefault:"info"`
	Seed     uint64 `env:"PARTSIM_SEED"`
	FPS      int    `env:"PARTSIM_FPS"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overrides cfg with the environment values that are set.
func (e Env) Apply(cfg *Config) {
	if e.Seed != 0 {
		cfg.Seed = e.Seed
	}
	if e.FPS > 0 {
		cfg.FPS = e.FPS
	}
}
