package particles

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
)

// Batch collects what renderers submit between Begin and End.
type Batch interface {
	Begin()
	End()
}

// System owns the running effects and the batches they draw into.
type System struct {
	batches []Batch
	effects []*Effect
}

func NewSystem() *System { return &System{} }

func (s *System) AddBatch(b Batch) { s.batches = append(s.batches, b) }

func (s *System) Batches() []Batch { return s.batches }

// Add registers an initialized effect. Effects update in registration order.
func (s *System) Add(e *Effect) error {
	if !e.Initialized() {
		return fmt.Errorf("system: add %q: %w", e.Name, ErrNotInitialized)
	}
	s.effects = append(s.effects, e)
	return nil
}

// Remove unregisters e without disposing it.
func (s *System) Remove(e *Effect) bool {
	i := slices.Index(s.effects, e)
	if i < 0 {
		return false
	}
	s.effects = slices.Delete(s.effects, i, i+1)
	return true
}

// RemoveAll unregisters every effect without disposing them.
func (s *System) RemoveAll() { s.effects = nil }

func (s *System) Effects() []*Effect { return s.effects }

func (s *System) Update(dt float32) {
	for _, e := range s.effects {
		e.Update(dt)
	}
}

// UpdateParallel updates effects on a bounded set of goroutines. Each effect
// must own its controllers; no two effects may share one.
func (s *System) UpdateParallel(dt float32) {
	n := len(s.effects)
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers <= 1 {
		s.Update(dt)
		return
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(effects []*Effect) {
			defer wg.Done()
			for _, e := range effects {
				e.Update(dt)
			}
		}(s.effects[start:end])
	}
	wg.Wait()
}

// Draw opens every batch, lets each effect's renderers submit and closes the
// batches again.
func (s *System) Draw() {
	for _, b := range s.batches {
		b.Begin()
	}
	for _, e := range s.effects {
		e.Draw()
	}
	for _, b := range s.batches {
		b.End()
	}
}

// IsComplete reports whether every registered effect has finished.
func (s *System) IsComplete() bool {
	for _, e := range s.effects {
		if !e.IsComplete() {
			return false
		}
	}
	return true
}
