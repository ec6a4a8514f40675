// Package sorter orders merged particle data for drawing. Sorters return a
// placement permutation: placement[i] is the output slot of input particle i,
// counting particles across spans in order.
package sorter

import "github.com/go-gl/mathgl/mgl32"

// Span is the live part of one controller's position channel (stride 3).
type Span struct {
	Positions []float32
	Count     int
}

type Sorter interface {
	// SetCamera sets the view matrix used by distance-based sorters.
	SetCamera(view mgl32.Mat4)
	// EnsureCapacity grows scratch buffers to hold n particles. It never shrinks them.
	EnsureCapacity(n int)
	// Sort returns the placement permutation for spans. The slice is reused by
	// the next call.
	Sort(spans []Span) []int
}

func total(spans []Span) int {
	n := 0
	for _, s := range spans {
		n += s.Count
	}
	return n
}

// None keeps submission order.
type None struct {
	identity []int
}

func NewNone() *None { return &None{} }

func (s *None) SetCamera(mgl32.Mat4) {}

func (s *None) EnsureCapacity(n int) {
	for i := len(s.identity); i < n; i++ {
		s.identity = append(s.identity, i)
	}
}

func (s *None) Sort(spans []Span) []int {
	n := total(spans)
	s.EnsureCapacity(n)
	return s.identity[:n]
}
