package sim

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/partsim/internal/particles"
)

// Simulator steps one effect at a fixed rate and feeds each frame to its
// metrics and observers.
type Simulator struct {
	effect    *particles.Effect
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(effect *particles.Effect, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{
		effect:    effect,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) Effect() *particles.Effect { return s.effect }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// prepare initializes the effect if needed, seeds its controllers and starts it.
func (s *Simulator) prepare(cfg Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !s.effect.Initialized() {
		if err := s.effect.Init(); err != nil {
			return err
		}
	}
	if cfg.Seed != 0 {
		for i, c := range s.effect.Controllers {
			c.SetSeed(cfg.Seed + uint64(i))
		}
	}
	s.effect.Start()
	return nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.prepare(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Controllers: make([]string, len(s.effect.Controllers)),
		Times:       make([]float64, 0, steps+1),
		Counts:      make([][]int, 0, steps+1),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}
	for i, c := range s.effect.Controllers {
		result.Controllers[i] = c.Name
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run started", "effect", s.effect.Name, "dt", cfg.Dt, "steps", steps, "seed", cfg.Seed)

	t := 0.0
	frame := Frame{Effect: s.effect}
	result.Times = append(result.Times, t)
	result.Counts = append(result.Counts, frame.Counts())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.effect.Update(float32(cfg.Dt))
		t += cfg.Dt
		result.StepsTaken++

		frame.Step, frame.Time = i+1, t
		if cfg.ValidateState && !frame.Valid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid position (NaN/Inf)"})
			break
		}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnStep(frame)
		}

		result.Times = append(result.Times, t)
		result.Counts = append(result.Counts, frame.Counts())

		if s.effect.IsComplete() {
			result.Completed = true
			if cfg.StopWhenComplete {
				break
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.logger.Debug("run finished", "effect", s.effect.Name, "steps", result.StepsTaken, "completed", result.Completed)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

// RunWithCallback steps the effect until the duration elapses, the context is
// done or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := s.prepare(cfg); err != nil {
		return err
	}

	frame := Frame{Effect: s.effect}
	for frame.Time < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.effect.Update(float32(cfg.Dt))
		frame.Step++
		frame.Time += cfg.Dt

		if cfg.ValidateState && !frame.Valid() {
			return SimError{Time: frame.Time, Step: frame.Step, Message: "invalid position (NaN/Inf)"}
		}
		if !callback(frame) {
			return nil
		}
	}
	return nil
}
