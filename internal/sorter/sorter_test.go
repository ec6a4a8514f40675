package sorter

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/partsim/internal/vmath"
)

func randomSpans(rng *rand.Rand, counts ...int) []Span {
	spans := make([]Span, len(counts))
	for i, n := range counts {
		pos := make([]float32, n*3)
		for k := range pos {
			pos[k] = rng.Float32()*200 - 100
		}
		spans[i] = Span{Positions: pos, Count: n}
	}
	return spans
}

func depths(view mgl32.Mat4, spans []Span) []float32 {
	var out []float32
	for _, s := range spans {
		for i := 0; i < s.Count; i++ {
			p := vmath.Load3(s.Positions, i*3)
			out = append(out, view.Row(2).Vec3().Dot(p))
		}
	}
	return out
}

func TestNoneIsIdentity(t *testing.T) {
	s := NewNone()
	spans := randomSpans(rand.New(rand.NewPCG(1, 2)), 3, 4)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, s.Sort(spans)); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
	if got := s.Sort(spans[:1]); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestDistancePlacement(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	cameras := []mgl32.Mat4{
		mgl32.Ident4(),
		mgl32.LookAtV(mgl32.Vec3{0, 0, 50}, mgl32.Vec3{}, vmath.UnitY),
		mgl32.LookAtV(mgl32.Vec3{30, 40, -10}, mgl32.Vec3{1, 0, 0}, vmath.UnitY),
	}
	sizes := [][]int{{0}, {1}, {2}, {8}, {9}, {10, 7}, {100}, {33, 0, 250, 1}}

	s := NewDistance()
	for ci, view := range cameras {
		s.SetCamera(view)
		for _, counts := range sizes {
			spans := randomSpans(rng, counts...)
			dist := depths(view, spans)
			placement := s.Sort(spans)
			n := len(dist)
			if len(placement) != n {
				t.Fatalf("camera %d sizes %v: len %d, want %d", ci, counts, len(placement), n)
			}

			slots := make([]bool, n)
			ordered := make([]float32, n)
			for i, slot := range placement {
				if slot < 0 || slot >= n || slots[slot] {
					t.Fatalf("camera %d sizes %v: placement is not a bijection: %v", ci, counts, placement)
				}
				slots[slot] = true
				ordered[slot] = dist[i]
			}
			for i := 1; i < n; i++ {
				if ordered[i-1] > ordered[i]+1e-3 {
					t.Fatalf("camera %d sizes %v: slot %d depth %v after %v", ci, counts, i, ordered[i], ordered[i-1])
				}
			}
		}
	}
}

func TestDistanceSortsBackToFront(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, vmath.UnitY)
	spans := []Span{{Positions: []float32{0, 0, 5, 0, 0, -5, 0, 0, 0}, Count: 3}}
	s := NewDistance()
	s.SetCamera(view)
	if diff := cmp.Diff([]int{2, 0, 1}, s.Sort(spans)); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestDistanceHandlesTies(t *testing.T) {
	pos := make([]float32, 64*3)
	for i := 0; i < 64; i++ {
		pos[i*3+2] = float32(i % 3)
	}
	s := NewDistance()
	placement := s.Sort([]Span{{Positions: pos, Count: 64}})
	seen := map[int]bool{}
	for _, p := range placement {
		seen[p] = true
	}
	if len(seen) != 64 {
		t.Errorf("placement has %d distinct slots, want 64", len(seen))
	}
}

func TestEnsureCapacityOnlyGrows(t *testing.T) {
	s := NewDistance()
	s.EnsureCapacity(100)
	buf := &s.distances[0]
	s.EnsureCapacity(10)
	s.Sort(randomSpans(rand.New(rand.NewPCG(3, 3)), 50))
	if &s.distances[0] != buf {
		t.Error("buffers were reallocated for a smaller batch")
	}
	s.EnsureCapacity(200)
	if len(s.distances) != 200 {
		t.Errorf("capacity = %d, want 200", len(s.distances))
	}
}

func BenchmarkDistanceSort(b *testing.B) {
	rng := rand.New(rand.NewPCG(9, 9))
	spans := randomSpans(rng, 4000, 4000)
	s := NewDistance()
	s.SetCamera(mgl32.LookAtV(mgl32.Vec3{10, 20, 300}, mgl32.Vec3{}, vmath.UnitY))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sort(spans)
	}
}
